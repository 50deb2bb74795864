package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// DocumentRepository defines the interface for inbound document storage
type DocumentRepository interface {
	Save(ctx context.Context, doc *entity.Document) error
	FindByID(ctx context.Context, id string) (*entity.Document, error)
	FindLatestByWaid(ctx context.Context, waid string) (*entity.Document, error)
	MarkProcessed(ctx context.Context, id, status, errorDetail string, flightsFound, hotelsFound int) error
	Count(ctx context.Context) (int64, error)
}
