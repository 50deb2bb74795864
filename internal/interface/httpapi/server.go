package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/internal/infrastructure/oauth"
	"tripwatch-service/internal/usecase"
	"tripwatch-service/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxUploadBytes = 20 << 20

// Handlers carries the HTTP surface of the service: document intake,
// typed actions, cron triggers and the OAuth linking flow.
type Handlers struct {
	processor  *usecase.DocumentProcessor
	dispatcher *usecase.ActionDispatcher
	engine     *usecase.WatchEngine
	reminders  *usecase.ReminderService
	counts     StatusCounters
	oauth      *oauth.GoogleOAuth
	tokens     repository.TokenRepository
	logger     logger.Logger
	cronSecret string
	version    string
}

// StatusCounters exposes the store row counts for the status endpoint.
type StatusCounters struct {
	Documents repository.DocumentRepository
	Flights   repository.FlightRecordRepository
	Hotels    repository.HotelRecordRepository
	Watches   repository.WatchRepository
}

// NewHandlers creates the HTTP handler set
func NewHandlers(
	processor *usecase.DocumentProcessor,
	dispatcher *usecase.ActionDispatcher,
	engine *usecase.WatchEngine,
	reminders *usecase.ReminderService,
	counts StatusCounters,
	googleOAuth *oauth.GoogleOAuth,
	tokens repository.TokenRepository,
	logger logger.Logger,
	cronSecret string,
	version string,
) *Handlers {
	return &Handlers{
		processor:  processor,
		dispatcher: dispatcher,
		engine:     engine,
		reminders:  reminders,
		counts:     counts,
		oauth:      googleOAuth,
		tokens:     tokens,
		logger:     logger,
		cronSecret: cronSecret,
		version:    version,
	}
}

// NewMux registers all routes.
func (h *Handlers) NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/status", h.handleStatus)
	mux.HandleFunc("/documents", h.handleDocumentIntake)
	mux.HandleFunc("/actions", h.handleAction)
	mux.HandleFunc("/cron/flightwatch", h.withCronSecret(h.handleCronFlightwatch))
	mux.HandleFunc("/cron/daily", h.withCronSecret(h.handleCronDaily))
	mux.HandleFunc("/cron/weekly", h.withCronSecret(h.handleCronWeekly))
	mux.HandleFunc("/oauth/google/start", h.handleOAuthStart)
	mux.HandleFunc("/oauth/google/callback", h.handleOAuthCallback)
	return mux
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Healthy"))
}

func (h *Handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docs, _ := h.counts.Documents.Count(ctx)
	flights, _ := h.counts.Flights.Count(ctx)
	hotels, _ := h.counts.Hotels.Count(ctx)
	watches, _ := h.counts.Watches.Count(ctx)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"version":   h.version,
		"documents": docs,
		"flights":   flights,
		"hotels":    hotels,
		"watches":   watches,
	})
}

// handleDocumentIntake accepts either a multipart upload (file + waid)
// or a JSON body with inline text. GET looks up a stored document's
// processing outcome.
func (h *Handlers) handleDocumentIntake(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.handleDocumentLookup(w, r)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "GET or POST only")
		return
	}

	doc, err := h.decodeDocument(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if doc.Waid == "" {
		writeError(w, http.StatusBadRequest, "waid is required")
		return
	}

	if err := h.processor.Intake(r.Context(), doc); err != nil {
		h.logger.Warn("Document intake failed", "doc", doc.ID, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"ok":     false,
			"doc_id": doc.ID,
			"error":  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"doc_id":  doc.ID,
		"flights": doc.FlightsFound,
		"hotels":  doc.HotelsFound,
	})
}

func (h *Handlers) decodeDocument(r *http.Request) (*entity.Document, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()

		payload, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return nil, err
		}

		contentType := header.Header.Get("Content-Type")
		return &entity.Document{
			Waid:        r.FormValue("waid"),
			Filename:    header.Filename,
			ContentType: contentType,
			Title:       r.FormValue("title"),
			Payload:     payload,
		}, nil
	}

	var body struct {
		Waid  string `json:"waid"`
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}
	return &entity.Document{
		Waid:        body.Waid,
		Filename:    "inline.txt",
		ContentType: "text/plain",
		Title:       body.Title,
		Payload:     []byte(body.Text),
	}, nil
}

// handleDocumentLookup answers with one document's processing outcome,
// addressed by id or as the owner's most recent upload.
func (h *Handlers) handleDocumentLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		doc *entity.Document
		err error
	)
	if id := r.URL.Query().Get("id"); id != "" {
		doc, err = h.counts.Documents.FindByID(ctx, id)
	} else if waid := r.URL.Query().Get("waid"); waid != "" {
		doc, err = h.counts.Documents.FindLatestByWaid(ctx, waid)
	} else {
		writeError(w, http.StatusBadRequest, "id or waid is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":          true,
		"doc_id":      doc.ID,
		"status":      doc.ProcessStatus,
		"detail":      doc.ErrorDetail,
		"flights":     doc.FlightsFound,
		"hotels":      doc.HotelsFound,
		"uploaded_at": doc.UploadedAt,
	})
}

func (h *Handlers) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	var body struct {
		Kind      string `json:"kind"`
		Waid      string `json:"waid"`
		RangeDays int    `json:"range_days"`
		Scope     string `json:"scope"`
		Iata      string `json:"iata"`
		Date      string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Waid == "" {
		writeError(w, http.StatusBadRequest, "waid is required")
		return
	}

	action := entity.Action{
		Kind:      entity.ActionKind(body.Kind),
		Waid:      body.Waid,
		RangeDays: body.RangeDays,
		Scope:     body.Scope,
		Iata:      body.Iata,
		Date:      body.Date,
	}
	reply, err := h.dispatcher.Dispatch(r.Context(), action)
	if err != nil {
		h.logger.Warn("Action failed", "kind", body.Kind, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "reply": reply})
}

func (h *Handlers) handleCronFlightwatch(w http.ResponseWriter, r *http.Request) {
	result := h.engine.RunPass(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"total":   result.Total,
		"updated": result.Updated,
		"errors":  result.Errors,
		"skipped": result.SkippedNoData,
	})
}

func (h *Handlers) handleCronDaily(w http.ResponseWriter, r *http.Request) {
	sent, err := h.reminders.SendDaily(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "sent": sent})
}

func (h *Handlers) handleCronWeekly(w http.ResponseWriter, r *http.Request) {
	sent, err := h.reminders.SendWeekly(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "sent": sent})
}

// handleOAuthStart redirects the owner to Google consent. The waid rides
// in the OAuth state parameter.
func (h *Handlers) handleOAuthStart(w http.ResponseWriter, r *http.Request) {
	waid := r.URL.Query().Get("waid")
	if waid == "" {
		writeError(w, http.StatusBadRequest, "waid is required")
		return
	}
	if !h.oauth.Configured() {
		writeError(w, http.StatusServiceUnavailable, "google oauth not configured")
		return
	}
	http.Redirect(w, r, h.oauth.GenerateAuthURL(waid), http.StatusFound)
}

func (h *Handlers) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	waid := r.URL.Query().Get("state")
	if code == "" || waid == "" {
		writeError(w, http.StatusBadRequest, "code and state are required")
		return
	}

	token, err := h.oauth.ExchangeCode(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	tokenJSON, err := h.oauth.TokenToJSON(token)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.tokens.SaveToken(r.Context(), waid, tokenJSON); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("Calendar linked", "waid", waid)
	w.Write([]byte("Calendar linked. You can close this window."))
}

// withCronSecret rejects cron triggers without the shared secret, taken
// from the X-Cron-Secret header or the secret query parameter.
func (h *Handlers) withCronSecret(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := r.Header.Get("X-Cron-Secret")
		if secret == "" {
			secret = r.URL.Query().Get("secret")
		}
		if secret != h.cronSecret {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"ok": false, "error": msg})
}
