// Package access implements the admin allow-list consulted by the transport
// adapter before any event reaches the dialog engine. Rejected callers never
// touch a session.
package access

import (
	"github.com/rs/zerolog"

	apperrors "journal-bot/internal/errors"
)

// Checker authorizes chat identities against a fixed allow-list. An empty
// allow-list means the journal is open to anyone, which suits single-user
// local runs.
type Checker struct {
	admins map[string]struct{}
	logger zerolog.Logger
}

// NewChecker creates a Checker over the given admin ids.
func NewChecker(admins []string, logger zerolog.Logger) *Checker {
	set := make(map[string]struct{}, len(admins))
	for _, id := range admins {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return &Checker{admins: set, logger: logger}
}

// Open reports whether every caller is allowed.
func (c *Checker) Open() bool {
	return len(c.admins) == 0
}

// Authorize returns errors.ErrAccessDenied for callers outside the
// allow-list.
func (c *Checker) Authorize(userID string) error {
	if c.Open() {
		return nil
	}
	if _, ok := c.admins[userID]; !ok {
		c.logger.Warn().Str("user_id", userID).Msg("unauthorized access denied")
		return apperrors.ErrAccessDenied
	}
	return nil
}
