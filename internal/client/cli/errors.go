package cli

import (
	"errors"

	"github.com/dmitrijs2005/lumen/internal/client/client"
	"github.com/dmitrijs2005/lumen/internal/common"
)

// Describe turns client errors into a hint the user can act on.
func Describe(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return err.Error() + " (run 'lumen login')"
	case errors.Is(err, client.ErrForbidden):
		return err.Error() + " (admin account and 'lumen admin unlock' required)"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, common.ErrVersionConflict):
		return "profile was changed concurrently, try again"
	default:
		return err.Error()
	}
}
