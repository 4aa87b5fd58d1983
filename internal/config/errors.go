package config

import (
	"fmt"
	"strings"
)

// MissingSecretError is returned when a required secret is absent from the environment.
type MissingSecretError struct {
	Names []string
}

func (e *MissingSecretError) Error() string {
	return fmt.Sprintf("Please set %s in the environment or the .env file", strings.Join(e.Names, " and "))
}
