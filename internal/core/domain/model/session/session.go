// Package session models who is acting on the service.
//
// A Session is created at login, looked up on every authenticated request and
// removed at logout. It never holds the password.
package session

import (
	"errors"
	"time"

	"localstore/internal/core/domain/model/kernel"
)

var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")

type Session struct {
	id        kernel.UUID
	userID    kernel.Key
	role      Role
	issuedAt  time.Time
	expiresAt time.Time

	isConstructed bool
}

// NewSession opens a session for userID valid for ttl from now.
func NewSession(userID kernel.Key, role Role, now time.Time, ttl time.Duration) (*Session, error) {
	return RestoreSession(kernel.NewUUID(), userID, role, now, now.Add(ttl))
}

// RestoreSession rebuilds a persisted session.
func RestoreSession(id kernel.UUID, userID kernel.Key, role Role, issuedAt, expiresAt time.Time) (*Session, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	return &Session{
		id:            id,
		userID:        userID,
		role:          role,
		issuedAt:      issuedAt,
		expiresAt:     expiresAt,
		isConstructed: true,
	}, nil
}

func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

func (s *Session) ID() kernel.UUID {
	return s.id
}

func (s *Session) UserID() kernel.Key {
	return s.userID
}

func (s *Session) Role() Role {
	return s.role
}

func (s *Session) IssuedAt() time.Time {
	return s.issuedAt
}

func (s *Session) ExpiresAt() time.Time {
	return s.expiresAt
}

// IsExpired reports whether the session is no longer valid at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

// Is reports whether s acts as userID in role.
func (s *Session) Is(role Role, userID kernel.Key) bool {
	return s.role == role && s.userID.IsEqual(userID)
}
