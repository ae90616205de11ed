// Package roles decides whether an identity holds the admin role.
package roles

import (
	"strings"

	"github.com/dmitrijs2005/lumen/internal/server/models"
)

// Resolver maps identities to roles using a fixed set of privileged emails.
// Matching ignores case and surrounding whitespace.
type Resolver struct {
	admins map[string]struct{}
}

func NewResolver(adminEmails ...string) *Resolver {
	r := &Resolver{admins: make(map[string]struct{}, len(adminEmails))}
	for _, e := range adminEmails {
		if e = normalizeEmail(e); e != "" {
			r.admins[e] = struct{}{}
		}
	}
	return r
}

// Resolve returns RoleAdmin iff identity's email is privileged.
func (r *Resolver) Resolve(identity models.Identity) models.Role {
	if r.IsAdmin(identity) {
		return models.RoleAdmin
	}
	return models.RoleUser
}

func (r *Resolver) IsAdmin(identity models.Identity) bool {
	email := normalizeEmail(identity.Email)
	if email == "" {
		return false
	}
	_, ok := r.admins[email]
	return ok
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
