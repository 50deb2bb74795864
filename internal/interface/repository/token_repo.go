package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormTokenRepository implements the TokenRepository interface
type GormTokenRepository struct {
	db *gorm.DB
}

// NewGormTokenRepository creates a new GORM token repository
func NewGormTokenRepository(db *gorm.DB) repository.TokenRepository {
	return &GormTokenRepository{
		db: db,
	}
}

// GoogleTokens GORM model for database mapping
type GoogleTokens struct {
	Waid      string `gorm:"primaryKey;column:waid"`
	TokenJSON string `gorm:"column:token_json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (GoogleTokens) TableName() string {
	return "google_tokens"
}

// SaveToken upserts the stored token for an owner.
func (r *GormTokenRepository) SaveToken(ctx context.Context, waid, tokenJSON string) error {
	model := &GoogleTokens{
		Waid:      waid,
		TokenJSON: tokenJSON,
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// LoadToken returns the stored token JSON for an owner, or an error when
// none is linked.
func (r *GormTokenRepository) LoadToken(ctx context.Context, waid string) (string, error) {
	var model GoogleTokens
	result := r.db.WithContext(ctx).Where("waid = ?", waid).First(&model)
	if result.Error != nil {
		return "", result.Error
	}
	return model.TokenJSON, nil
}
