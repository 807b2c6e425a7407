package ports

import "context"

// ConfigurationProvider exposes the accounting settings the core depends on.
type ConfigurationProvider interface {
	// RoundDownAccount returns the account code for round-off invoice lines in the
	// given scope, or "" when none is configured.
	RoundDownAccount(ctx context.Context, scope string) (string, error)
}
