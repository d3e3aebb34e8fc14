package session

import (
	"context"
	"time"
)

const RoleAdmin = "ADMIN"
const RoleUser = "USER"

type Session struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`

	SigningTime time.Time       `json:"-"`
	Context     context.Context `json:"-"`
}

type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Session) HasRole(role string) bool {
	return s.Identity.Role == role
}

// Perm reports whether the session satisfies the required role.
// ADMIN satisfies every role requirement.
func (s *Session) Perm(requiredRole string) bool {
	if s.Identity.Role == RoleAdmin {
		return true
	}
	return s.Identity.Role == requiredRole
}

func (s *Session) Clone() Session {
	return Session{Token: s.Token, Identity: s.Identity, SigningTime: s.SigningTime, Context: s.Context}
}
