// Package journalrepo persists transition runs in the transition_runs table.
package journalrepo

import (
	"time"

	"localstore/internal/core/domain/model/journal"
	"localstore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RunDTO is one row of transition_runs.
type RunDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Transition string    `gorm:"type:varchar(64);not null"`
	OrderID    string    `gorm:"type:varchar(768);not null;index"`
	Actor      string    `gorm:"type:varchar(768);not null"`
	Outcome    int       `gorm:"type:smallint;not null"`
	Attempts   int       `gorm:"type:int;not null"`
	Steps      int       `gorm:"type:int;not null"`
	FailedStep int       `gorm:"type:int;not null"`
	LastError  string    `gorm:"type:text"`
	StartedAt  time.Time `gorm:"not null;index"`
	FinishedAt *time.Time
}

func (RunDTO) TableName() string {
	return "transition_runs"
}

func fromDomain(e *journal.Entry) RunDTO {
	return RunDTO{
		ID:         e.ID().Bytes(),
		Transition: e.Transition(),
		OrderID:    e.OrderID(),
		Actor:      e.Actor(),
		Outcome:    int(e.Outcome()),
		Attempts:   e.Attempts(),
		Steps:      e.Steps(),
		FailedStep: e.FailedStep(),
		LastError:  e.LastError(),
		StartedAt:  e.StartedAt(),
		FinishedAt: e.FinishedAt(),
	}
}

func toDomain(dto RunDTO) (*journal.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return journal.RestoreEntry(
		id,
		dto.Transition,
		dto.OrderID,
		dto.Actor,
		journal.Outcome(dto.Outcome),
		dto.Attempts,
		dto.Steps,
		dto.FailedStep,
		dto.LastError,
		dto.StartedAt,
		dto.FinishedAt,
	)
}
