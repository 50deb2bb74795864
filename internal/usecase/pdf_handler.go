package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"

	"github.com/ledongthuc/pdf"
)

// PDFHandler indexes PDF documents. Page text is concatenated up to the
// configured page cap.
type PDFHandler struct {
	extractor DocumentExtractor
	indexer   *BookingIndexer
	logger    logger.Logger
	maxPages  int
}

// NewPDFHandler creates a new PDF document handler
func NewPDFHandler(extractor DocumentExtractor, indexer *BookingIndexer, maxPages int, logger logger.Logger) *PDFHandler {
	return &PDFHandler{
		extractor: extractor,
		indexer:   indexer,
		logger:    logger,
		maxPages:  maxPages,
	}
}

func (h *PDFHandler) Name() string {
	return "pdf"
}

func (h *PDFHandler) CanHandle(contentType, filename string) bool {
	if contentType == "application/pdf" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// Process extracts page text from the PDF and indexes the bookings
// found in it.
func (h *PDFHandler) Process(ctx context.Context, doc *entity.Document) error {
	text, err := h.extractText(doc.Payload)
	if err != nil {
		return fmt.Errorf("failed to read PDF: %w", err)
	}

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

func (h *PDFHandler) extractText(payload []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", err
	}

	pages := reader.NumPage()
	if pages > h.maxPages {
		pages = h.maxPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			h.logger.Warn("Skipping unreadable PDF page", "page", i, "error", err)
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
