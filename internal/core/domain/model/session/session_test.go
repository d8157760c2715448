package session_test

import (
	"testing"
	"time"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/session"
	"localstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	phone := kernel.MustKey("9876543210")

	s, err := session.NewSession(phone, session.DeliveryPartner, now, time.Hour)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.NoError(t, s.ID().Validate())
	assert.Equal(t, phone, s.UserID())
	assert.Equal(t, session.DeliveryPartner, s.Role())
	assert.Equal(t, now.Add(time.Hour), s.ExpiresAt())
	assert.False(t, s.IsExpired(now.Add(59*time.Minute)))
	assert.True(t, s.IsExpired(now.Add(time.Hour)))
	assert.True(t, s.Is(session.DeliveryPartner, phone))
	assert.False(t, s.Is(session.StorePartner, phone))
}

func TestRestoreSession_Invalid(t *testing.T) {
	_, err := session.RestoreSession(kernel.UUID{}, kernel.Key{}, session.UnknownRole, time.Time{}, time.Time{})

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSession_ZeroValue(t *testing.T) {
	var s *session.Session
	assert.ErrorIs(t, s.Validate(), session.ErrSessionIsNotConstructed)
	assert.ErrorIs(t, (&session.Session{}).Validate(), session.ErrSessionIsNotConstructed)
}

func TestParseRole(t *testing.T) {
	r, err := session.ParseRole("storePartner")
	require.NoError(t, err)
	assert.Equal(t, session.StorePartner, r)
	assert.Equal(t, "Stores", r.AccountRoot())
	assert.Equal(t, "DeliveryPartner", session.DeliveryPartner.AccountRoot())

	_, err = session.ParseRole("admin")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
