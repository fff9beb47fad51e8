package credentials

import (
	"fmt"

	"github.com/CrimsonX77/Aurora/pkg/config"
	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
	"github.com/CrimsonX77/Aurora/runtime/logger"
)

const component = "credentials"

// Resolve reads the Mistral API key from env. An unset key yields a
// configuration error naming the variable and both places it may be set.
// A set key is used as-is; its format is not checked.
func Resolve(env *config.Environment) (*APIKeyCredential, error) {
	return resolveVar(env, config.APIKeyVar)
}

func resolveVar(env *config.Environment, name string) (*APIKeyCredential, error) {
	key, ok := env.Lookup(name)
	if !ok {
		return nil, pkgerrors.Configuration(component, "Resolve", fmt.Sprintf(
			"%s not found; set it in the environment or add it to the %s file",
			name, config.DefaultDotEnvFile))
	}
	cred := NewAPIKeyCredential(key)
	logger.Debug("API key resolved", "var", name, "key", cred.Redacted())
	return cred, nil
}
