package db

import (
	"context"
	"fmt"
	"time"

	"github.com/pysugar/code-facts/internal/db/models"
	"github.com/pysugar/code-facts/internal/providers/catalog"
	"gorm.io/gorm"
)

// FactLog is the append-only store of generated facts.
type FactLog struct {
	db  *gorm.DB
	now func() time.Time
}

func NewFactLog(db *gorm.DB) *FactLog {
	return &FactLog{db: db, now: time.Now}
}

// Append stores a new fact stamped with the current wall-clock time and
// returns its id. provider must name a known provider descriptor.
func (l *FactLog) Append(ctx context.Context, text, icon, provider string) (uint, error) {
	fact, err := l.AppendFact(ctx, text, icon, provider)
	if err != nil {
		return 0, err
	}
	return fact.ID, nil
}

// AppendFact is Append returning the stored row.
func (l *FactLog) AppendFact(ctx context.Context, text, icon, provider string) (models.GeneratedFact, error) {
	if !catalog.IsKnown(provider) {
		return models.GeneratedFact{}, fmt.Errorf("cannot log fact for unknown provider %q", provider)
	}

	fact := models.GeneratedFact{
		Text:      text,
		Icon:      icon,
		Provider:  provider,
		Timestamp: l.now().UnixMilli(),
	}
	if err := l.db.WithContext(ctx).Create(&fact).Error; err != nil {
		return models.GeneratedFact{}, storageErr("append fact", err)
	}
	return fact, nil
}

// ListAll returns every logged fact in insertion order.
func (l *FactLog) ListAll(ctx context.Context) ([]models.GeneratedFact, error) {
	return l.list(l.db.WithContext(ctx))
}

// ListByProvider returns the facts produced by one provider.
func (l *FactLog) ListByProvider(ctx context.Context, provider string) ([]models.GeneratedFact, error) {
	return l.list(l.db.WithContext(ctx).Where("provider = ?", provider))
}

// ListSince returns the facts logged at or after sinceMillis.
func (l *FactLog) ListSince(ctx context.Context, sinceMillis int64) ([]models.GeneratedFact, error) {
	return l.list(l.db.WithContext(ctx).Where("timestamp >= ?", sinceMillis))
}

func (l *FactLog) list(query *gorm.DB) ([]models.GeneratedFact, error) {
	facts := []models.GeneratedFact{}
	if err := query.Order("id").Find(&facts).Error; err != nil {
		return nil, storageErr("list facts", err)
	}
	return facts, nil
}

// DeleteByID removes one fact. Deleting an id that does not exist succeeds.
func (l *FactLog) DeleteByID(ctx context.Context, id uint) error {
	if err := l.db.WithContext(ctx).Delete(&models.GeneratedFact{}, id).Error; err != nil {
		return storageErr("delete fact", err)
	}
	return nil
}

// ClearAll removes every logged fact.
func (l *FactLog) ClearAll(ctx context.Context) error {
	err := l.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.GeneratedFact{}).Error
	if err != nil {
		return storageErr("clear facts", err)
	}
	return nil
}
