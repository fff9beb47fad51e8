// Package billing implements the simulated tier upgrade payment: the tier
// price table, member records, the payment form, the dialog state machine
// and the synthetic transaction record it produces.
//
// Nothing here talks to a payment gateway or persists anything. A
// Transaction exists only to be returned to the caller.
package billing

import "fmt"

// Tier names.
const (
	TierKids     = "Kids"
	TierStandard = "Standard"
	TierPremium  = "Premium"

	// DefaultTier is assumed when a member record carries no tier.
	DefaultTier = TierStandard
)

// Monthly prices in dollars.
const (
	PriceKids     = 5.00
	PriceStandard = 10.00
	PricePremium  = 15.00

	// DefaultPrice is charged for tiers missing from the price table.
	DefaultPrice = 10.00
)

var tierPrices = map[string]float64{
	TierKids:     PriceKids,
	TierStandard: PriceStandard,
	TierPremium:  PricePremium,
}

// Tiers lists the priced tiers from cheapest to most expensive.
func Tiers() []string {
	return []string{TierKids, TierStandard, TierPremium}
}

// PriceFor returns the monthly price of tier. Lookup is case-sensitive and
// unknown tiers cost DefaultPrice.
func PriceFor(tier string) float64 {
	if price, ok := tierPrices[tier]; ok {
		return price
	}
	return DefaultPrice
}

// IsKnownTier reports whether tier has an entry in the price table.
func IsKnownTier(tier string) bool {
	_, ok := tierPrices[tier]
	return ok
}

// FormatAmount renders a dollar amount as "$15.00".
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
