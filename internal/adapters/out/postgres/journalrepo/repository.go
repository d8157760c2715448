package journalrepo

import (
	"context"
	"errors"

	"localstore/internal/core/domain/model/journal"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJournalRepository implements ports.JournalRepository using GORM.
type GormJournalRepository struct {
	db *gorm.DB
}

func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

func (r *GormJournalRepository) Add(ctx context.Context, entry *journal.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update overwrites every column of an existing run.
func (r *GormJournalRepository) Update(ctx context.Context, entry *journal.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	result := r.db.WithContext(ctx).
		Model(&RunDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transitionRun", entry.ID().String())
	}
	return nil
}

func (r *GormJournalRepository) Get(ctx context.Context, id kernel.UUID) (*journal.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RunDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transitionRun", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormJournalRepository) ListByOrder(ctx context.Context, orderID string) ([]*journal.Entry, error) {
	var dtos []RunDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("started_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*journal.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
