package billing

import (
	"encoding/json"
	"fmt"
	"os"
)

// UnknownMemberName is shown for members without a profile name.
const UnknownMemberName = "Unknown"

// Member is the subset of an archive member record the payment dialog reads.
type Member struct {
	MemberID     string        `json:"member_id" yaml:"member_id"`
	Profile      MemberProfile `json:"member_profile" yaml:"member_profile"`
	Subscription Subscription  `json:"subscription" yaml:"subscription"`
}

// MemberProfile holds display details.
type MemberProfile struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Subscription holds the member's current plan.
type Subscription struct {
	Tier string `json:"tier,omitempty" yaml:"tier,omitempty"`
}

// NewMember builds a member record from its three fields.
func NewMember(id, name, tier string) Member {
	return Member{
		MemberID:     id,
		Profile:      MemberProfile{Name: name},
		Subscription: Subscription{Tier: tier},
	}
}

// Name returns the display name, or UnknownMemberName.
func (m Member) Name() string {
	if m.Profile.Name == "" {
		return UnknownMemberName
	}
	return m.Profile.Name
}

// Tier returns the current tier, or DefaultTier.
func (m Member) Tier() string {
	if m.Subscription.Tier == "" {
		return DefaultTier
	}
	return m.Subscription.Tier
}

// ParseMember decodes a JSON member record. Unknown fields are ignored.
func ParseMember(data []byte) (Member, error) {
	var m Member
	if err := json.Unmarshal(data, &m); err != nil {
		return Member{}, fmt.Errorf("failed to parse member record: %w", err)
	}
	return m, nil
}

// LoadMember reads a JSON member record from path.
func LoadMember(path string) (Member, error) {
	//nolint:gosec // G304: path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return Member{}, fmt.Errorf("failed to read member file %s: %w", path, err)
	}
	return ParseMember(data)
}
