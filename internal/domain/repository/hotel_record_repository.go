package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// HotelRecordRepository defines the interface for hotel record storage
type HotelRecordRepository interface {
	Save(ctx context.Context, record *entity.HotelRecord) error
	ListByCheckinDate(ctx context.Context, date string) ([]*entity.HotelRecord, error)
	ListBetween(ctx context.Context, waid, from, until string) ([]*entity.HotelRecord, error)
	Count(ctx context.Context) (int64, error)
}
