// Package sessionrepo persists open sessions. Only who is logged in and until
// when is stored; credentials never reach this table.
package sessionrepo

import (
	"time"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/session"

	"github.com/google/uuid"
)

type SessionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:varchar(768);not null;index"`
	Role      int       `gorm:"type:smallint;not null"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (SessionDTO) TableName() string {
	return "sessions"
}

func fromDomain(s *session.Session) SessionDTO {
	return SessionDTO{
		ID:        s.ID().Bytes(),
		UserID:    s.UserID().String(),
		Role:      int(s.Role()),
		IssuedAt:  s.IssuedAt(),
		ExpiresAt: s.ExpiresAt(),
	}
}

func toDomain(dto SessionDTO) (*session.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.NewKey("userId", dto.UserID)
	if err != nil {
		return nil, err
	}
	return session.RestoreSession(id, userID, session.Role(dto.Role), dto.IssuedAt, dto.ExpiresAt)
}
