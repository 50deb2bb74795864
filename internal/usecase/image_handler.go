package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"
)

// ImageHandler indexes photographed tickets and booking screenshots
// through the vision extraction path.
type ImageHandler struct {
	extractor DocumentExtractor
	indexer   *BookingIndexer
	logger    logger.Logger
}

// NewImageHandler creates a new image document handler
func NewImageHandler(extractor DocumentExtractor, indexer *BookingIndexer, logger logger.Logger) *ImageHandler {
	return &ImageHandler{
		extractor: extractor,
		indexer:   indexer,
		logger:    logger,
	}
}

func (h *ImageHandler) Name() string {
	return "image"
}

func (h *ImageHandler) CanHandle(contentType, filename string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// Process extracts bookings from the image and feeds them through the
// same indexing path as text. The serialized vision result plus the
// filename and title stand in as the raw text, so when vision finds
// nothing the heuristic fallback runs against the metadata rather than
// the pixels.
func (h *ImageHandler) Process(ctx context.Context, doc *entity.Document) error {
	result := h.extractor.ExtractFromImage(ctx, doc.ContentType, doc.Payload)
	if result.Outcome == entity.OutcomeError {
		h.logger.Warn("Vision extraction failed", "doc", doc.ID, "reason", result.Reason)
	}

	serialized, _ := json.Marshal(map[string]interface{}{
		"flights": result.Flights,
		"hotels":  result.Hotels,
	})
	rawText := strings.TrimSpace(string(serialized) + "\n" + doc.Filename + " " + doc.Title)

	flights, hotels := h.indexer.Index(ctx, doc.Waid, doc.ID, rawText, result)
	doc.FlightsFound = flights
	doc.HotelsFound = hotels
	return nil
}
