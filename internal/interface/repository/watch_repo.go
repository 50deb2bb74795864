package repository

import (
	"context"
	"errors"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormWatchRepository implements the WatchRepository interface
type GormWatchRepository struct {
	db *gorm.DB
}

// NewGormWatchRepository creates a new GORM watch repository
func NewGormWatchRepository(db *gorm.DB) repository.WatchRepository {
	return &GormWatchRepository{
		db: db,
	}
}

// FlightWatch GORM model for database mapping
type FlightWatch struct {
	ID           uint   `gorm:"primaryKey"`
	Waid         string `gorm:"column:waid;index"`
	FlightIata   string `gorm:"column:flight_iata"`
	FlightDate   string `gorm:"column:flight_date"`
	Provider     string `gorm:"column:provider;default:aviationstack"`
	LastSnapshot string `gorm:"column:last_snapshot"`
	LastHash     string `gorm:"column:last_hash"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (FlightWatch) TableName() string {
	return "flight_watch"
}

func toWatchEntity(m *FlightWatch) *entity.WatchSubscription {
	return &entity.WatchSubscription{
		ID:           m.ID,
		Waid:         m.Waid,
		FlightIata:   m.FlightIata,
		FlightDate:   m.FlightDate,
		Provider:     m.Provider,
		LastSnapshot: m.LastSnapshot,
		LastHash:     m.LastHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// Subscribe creates a watch row with an empty snapshot/hash. An existing
// active row for the same (waid, code) is returned instead of inserting
// a duplicate polling row.
func (r *GormWatchRepository) Subscribe(ctx context.Context, waid, flightIata, flightDate string) (*entity.WatchSubscription, bool, error) {
	var existing FlightWatch
	err := r.db.WithContext(ctx).
		Where("waid = ? AND flight_iata = ?", waid, flightIata).
		First(&existing).Error
	if err == nil {
		return toWatchEntity(&existing), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	model := &FlightWatch{
		Waid:       waid,
		FlightIata: flightIata,
		FlightDate: flightDate,
		Provider:   entity.ProviderAviationstack,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, false, err
	}
	return toWatchEntity(model), true, nil
}

// DeleteByWaidAndIata removes watches matching (waid, code).
func (r *GormWatchRepository) DeleteByWaidAndIata(ctx context.Context, waid, flightIata string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("waid = ? AND flight_iata = ?", waid, flightIata).
		Delete(&FlightWatch{})
	return result.RowsAffected, result.Error
}

// DeleteByWaid removes all watches for an owner.
func (r *GormWatchRepository) DeleteByWaid(ctx context.Context, waid string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("waid = ?", waid).
		Delete(&FlightWatch{})
	return result.RowsAffected, result.Error
}

// ListByWaid returns an owner's watches, most recently created first.
func (r *GormWatchRepository) ListByWaid(ctx context.Context, waid string) ([]*entity.WatchSubscription, error) {
	var models []FlightWatch
	result := r.db.WithContext(ctx).
		Where("waid = ?", waid).
		Order("id DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	subs := make([]*entity.WatchSubscription, 0, len(models))
	for i := range models {
		subs = append(subs, toWatchEntity(&models[i]))
	}
	return subs, nil
}

// ListAll returns every active watch in registry order.
func (r *GormWatchRepository) ListAll(ctx context.Context) ([]*entity.WatchSubscription, error) {
	var models []FlightWatch
	result := r.db.WithContext(ctx).Order("id ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	subs := make([]*entity.WatchSubscription, 0, len(models))
	for i := range models {
		subs = append(subs, toWatchEntity(&models[i]))
	}
	return subs, nil
}

// UpdateSnapshot persists a new snapshot/hash for one row. The write is
// scoped to the row id so concurrent passes never clobber other rows.
func (r *GormWatchRepository) UpdateSnapshot(ctx context.Context, id uint, snapshotJSON, hash string) error {
	return r.db.WithContext(ctx).
		Model(&FlightWatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_snapshot": snapshotJSON,
			"last_hash":     hash,
			"updated_at":    time.Now().UTC(),
		}).Error
}

// Count returns the total number of watch rows.
func (r *GormWatchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&FlightWatch{}).Count(&count)
	return count, result.Error
}
