package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// FlightRecordRepository defines the interface for flight record storage
type FlightRecordRepository interface {
	Save(ctx context.Context, record *entity.FlightRecord) error
	ListUpcoming(ctx context.Context, waid string, withinDays int, limit int) ([]*entity.FlightRecord, error)
	ListByDepartDate(ctx context.Context, date string) ([]*entity.FlightRecord, error)
	ListBetween(ctx context.Context, waid, from, until string) ([]*entity.FlightRecord, error)
	Count(ctx context.Context) (int64, error)
}
