package usecase

import (
	"context"
	"strings"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"
)

// TextHandler indexes plain-text documents, typically forwarded chat
// messages and pasted booking confirmations.
type TextHandler struct {
	extractor DocumentExtractor
	indexer   *BookingIndexer
	logger    logger.Logger
}

// NewTextHandler creates a new text document handler
func NewTextHandler(extractor DocumentExtractor, indexer *BookingIndexer, logger logger.Logger) *TextHandler {
	return &TextHandler{
		extractor: extractor,
		indexer:   indexer,
		logger:    logger,
	}
}

func (h *TextHandler) Name() string {
	return "text"
}

func (h *TextHandler) CanHandle(contentType, filename string) bool {
	if strings.HasPrefix(contentType, "text/") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".txt")
}

// Process extracts bookings from the document body and indexes them.
func (h *TextHandler) Process(ctx context.Context, doc *entity.Document) error {
	text := string(doc.Payload)
	result := h.extractor.ExtractFromText(ctx, text)
	if result.Outcome == entity.OutcomeError {
		h.logger.Warn("AI extraction degraded to heuristic",
			"doc", doc.ID, "reason", result.Reason)
	}

	flights, hotels := h.indexer.Index(ctx, doc.Waid, doc.ID, text, result)
	doc.FlightsFound = flights
	doc.HotelsFound = hotels
	return nil
}
