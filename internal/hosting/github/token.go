package github

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// TokenEnvVar is the dedicated token variable, checked first.
	TokenEnvVar = "UPDATE_BEACON_GITHUB_TOKEN"

	// FallbackTokenEnvVar is the variable CI pipelines commonly provide.
	FallbackTokenEnvVar = "GITHUB_TOKEN"
)

// ErrTokenMissing is returned when no hosting token is configured.
var ErrTokenMissing = errors.New("github token is not set")

// TokenFromEnv reads the hosting token from the environment. Its absence is
// a precondition failure, callers check it before doing any other work.
func TokenFromEnv() (string, error) {
	for _, name := range []string{TokenEnvVar, FallbackTokenEnvVar} {
		if token := strings.TrimSpace(os.Getenv(name)); token != "" {
			return token, nil
		}
	}

	return "", fmt.Errorf("%w: set %s or %s", ErrTokenMissing, TokenEnvVar, FallbackTokenEnvVar)
}
