package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"

	"github.com/tmc/langchaingo/llms"
)

const extractionPrompt = `You read travel documents and return structured booking data.
Extract every flight segment and hotel stay you find. Reply with ONLY a JSON object:
{"flights":[{"origin":"IATA","dest":"IATA","depart_date":"YYYY-MM-DD","depart_time":"HH:MM","arrival_date":"YYYY-MM-DD","arrival_time":"HH:MM","airline":"","flight_number":"","pnr":"","passengers":""}],"hotels":[{"hotel_name":"","city":"","checkin_date":"YYYY-MM-DD","checkout_date":"YYYY-MM-DD","address":""}]}
Use empty strings for unknown fields. Do not invent data.`

// Extractor runs structured booking extraction through a chat model.
// It never returns a Go error; failures degrade to an empty
// ExtractionResult so the heuristic path can take over.
type Extractor struct {
	model      llms.Model
	logger     logger.Logger
	timeout    time.Duration
	textBudget int
}

// NewExtractor creates a new model-backed extractor
func NewExtractor(model llms.Model, textBudget int, timeout time.Duration, logger logger.Logger) *Extractor {
	return &Extractor{
		model:      model,
		logger:     logger,
		timeout:    timeout,
		textBudget: textBudget,
	}
}

// rawExtraction mirrors the model reply. Models occasionally answer with
// a singular object instead of an array, so both shapes are accepted.
type rawExtraction struct {
	Flights []entity.FlightCandidate `json:"flights"`
	Hotels  []entity.HotelCandidate  `json:"hotels"`
	Flight  *entity.FlightCandidate  `json:"flight"`
	Hotel   *entity.HotelCandidate   `json:"hotel"`
}

// ExtractFromText asks the model for bookings found in document text.
func (e *Extractor) ExtractFromText(ctx context.Context, text string) entity.ExtractionResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return entity.EmptyExtraction(entity.OutcomeEmpty, "no text")
	}
	if e.model == nil {
		return entity.EmptyExtraction(entity.OutcomeError, "model not configured")
	}
	if len(text) > e.textBudget {
		text = text[:e.textBudget]
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, extractionPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, text),
	}
	return e.generate(ctx, messages)
}

// ExtractFromImage asks the vision model for bookings found in an image,
// usually a photographed ticket or booking screenshot.
func (e *Extractor) ExtractFromImage(ctx context.Context, mimeType string, data []byte) entity.ExtractionResult {
	if len(data) == 0 {
		return entity.EmptyExtraction(entity.OutcomeEmpty, "no image data")
	}
	if e.model == nil {
		return entity.EmptyExtraction(entity.OutcomeError, "model not configured")
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, extractionPrompt),
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mimeType, data),
				llms.TextPart("Extract the bookings from this image."),
			},
		},
	}
	return e.generate(ctx, messages)
}

func (e *Extractor) generate(ctx context.Context, messages []llms.MessageContent) entity.ExtractionResult {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		e.logger.Warn("Extraction call failed", "error", err)
		return entity.EmptyExtraction(entity.OutcomeError, err.Error())
	}
	if len(resp.Choices) == 0 {
		return entity.EmptyExtraction(entity.OutcomeError, "no choices in response")
	}

	return ParseExtraction(resp.Choices[0].Content)
}

// ParseExtraction parses a model reply into candidates. The reply may be
// wrapped in prose or markdown fences, so parsing starts from the first
// brace and ends at the last.
func ParseExtraction(reply string) entity.ExtractionResult {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return entity.EmptyExtraction(entity.OutcomeError, "no JSON object in reply")
	}

	var raw rawExtraction
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return entity.EmptyExtraction(entity.OutcomeError, "unparseable JSON: "+err.Error())
	}

	flights := raw.Flights
	if len(flights) == 0 && raw.Flight != nil {
		flights = []entity.FlightCandidate{*raw.Flight}
	}
	hotels := raw.Hotels
	if len(hotels) == 0 && raw.Hotel != nil {
		hotels = []entity.HotelCandidate{*raw.Hotel}
	}

	kept := make([]entity.FlightCandidate, 0, len(flights))
	for _, f := range flights {
		f.Origin = strings.ToUpper(strings.TrimSpace(f.Origin))
		f.Dest = strings.ToUpper(strings.TrimSpace(f.Dest))
		f.DepartDate = strings.TrimSpace(f.DepartDate)
		if f.Dest == "" && f.DepartDate == "" && f.FlightNumber == "" {
			continue
		}
		kept = append(kept, f)
	}

	keptHotels := make([]entity.HotelCandidate, 0, len(hotels))
	for _, h := range hotels {
		h.HotelName = strings.TrimSpace(h.HotelName)
		h.CheckinDate = strings.TrimSpace(h.CheckinDate)
		if h.HotelName == "" && h.CheckinDate == "" {
			continue
		}
		keptHotels = append(keptHotels, h)
	}

	outcome := entity.OutcomeOK
	if len(kept) == 0 && len(keptHotels) == 0 {
		outcome = entity.OutcomeEmpty
	}
	return entity.ExtractionResult{Flights: kept, Hotels: keptHotels, Outcome: outcome}
}
