package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"

	"github.com/google/uuid"
)

// DocumentHandler processes one class of inbound document. A handler
// runs extraction and indexing and records its counts on the document.
type DocumentHandler interface {
	Name() string
	CanHandle(contentType, filename string) bool
	Process(ctx context.Context, doc *entity.Document) error
}

// HandlerRouter resolves the handler for an inbound document.
type HandlerRouter interface {
	GetHandler(contentType, filename string) DocumentHandler
}

// DocumentExtractor is the structured extraction seam. Implementations
// never return Go errors; failures degrade to empty results.
type DocumentExtractor interface {
	ExtractFromText(ctx context.Context, text string) entity.ExtractionResult
	ExtractFromImage(ctx context.Context, mimeType string, data []byte) entity.ExtractionResult
}

// DocumentProcessor stores inbound documents and drives one extraction
// pass over each through the matching handler.
type DocumentProcessor struct {
	documentRepo repository.DocumentRepository
	router       HandlerRouter
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewDocumentProcessor creates a new document processor
func NewDocumentProcessor(
	documentRepo repository.DocumentRepository,
	router HandlerRouter,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *DocumentProcessor {
	return &DocumentProcessor{
		documentRepo: documentRepo,
		router:       router,
		metrics:      metrics,
		logger:       logger,
	}
}

// Intake stores a new inbound document and runs one extraction pass.
func (p *DocumentProcessor) Intake(ctx context.Context, doc *entity.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if err := p.documentRepo.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	return p.Process(ctx, doc)
}

// Process runs one extraction pass over a stored document. The pass
// always terminates in a processed or failed mark; a second pass over
// the same document appends new records rather than updating old ones.
func (p *DocumentProcessor) Process(ctx context.Context, doc *entity.Document) error {
	started := time.Now()

	handler := p.router.GetHandler(doc.ContentType, doc.Filename)
	if handler == nil {
		detail := fmt.Sprintf("unsupported content type: %s", doc.ContentType)
		p.logger.Warn("No handler for document", "doc", doc.ID, "contentType", doc.ContentType)
		p.metrics.ErrorsCount.WithLabelValues("document_route").Inc()
		p.documentRepo.MarkProcessed(ctx, doc.ID, entity.DocStatusFailed, detail, 0, 0)
		return errors.New(detail)
	}

	p.logger.Info("Processing document",
		"doc", doc.ID,
		"handler", handler.Name(),
		"waid", doc.Waid)

	if err := handler.Process(ctx, doc); err != nil {
		p.metrics.ErrorsCount.WithLabelValues("document_process").Inc()
		p.documentRepo.MarkProcessed(ctx, doc.ID, entity.DocStatusFailed, err.Error(), doc.FlightsFound, doc.HotelsFound)
		return err
	}

	p.metrics.DocumentsIndexed.Inc()
	p.metrics.ExtractionTime.Observe(time.Since(started).Seconds())

	if err := p.documentRepo.MarkProcessed(ctx, doc.ID, entity.DocStatusProcessed, "", doc.FlightsFound, doc.HotelsFound); err != nil {
		p.logger.Warn("Failed to mark document processed", "doc", doc.ID, "error", err)
	}

	p.logger.Info("Document indexed",
		"doc", doc.ID,
		"flights", doc.FlightsFound,
		"hotels", doc.HotelsFound,
		"took", time.Since(started))
	return nil
}
