package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
)

// WhatsappRepository sends text payloads to the WhatsApp gateway service.
type WhatsappRepository struct {
	logger      logger.Logger
	client      *http.Client
	baseURL     string
	bearerToken string
	companyID   string
	agentID     string
}

// NewWhatsappRepository creates a new WhatsApp repository
func NewWhatsappRepository(baseURL, bearerToken, companyID, agentID string, logger logger.Logger) repository.NotifierRepository {
	return &WhatsappRepository{
		logger:      logger,
		client:      &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		bearerToken: bearerToken,
		companyID:   companyID,
		agentID:     agentID,
	}
}

type sendMessageRequest struct {
	CompanyID   string `json:"companyId"`
	AgentID     string `json:"agentId"`
	PhoneNumber string `json:"phoneNumber"`
	Message     struct {
		Text string `json:"text"`
	} `json:"message"`
	Type string `json:"type"`
}

// NormalizeWaid strips transport prefixes and the leading plus from a
// WhatsApp identifier.
func NormalizeWaid(waid string) string {
	waid = strings.TrimSpace(waid)
	waid = strings.TrimPrefix(waid, "whatsapp:")
	return strings.TrimPrefix(waid, "+")
}

// SendPayload sends a text payload to the WhatsApp service.
func (r *WhatsappRepository) SendPayload(ctx context.Context, payload *entity.Payload) error {
	if r.baseURL == "" {
		r.logger.Warn("WhatsApp service not configured; cannot send outbound")
		return nil
	}

	msg := sendMessageRequest{
		CompanyID:   r.companyID,
		AgentID:     r.agentID,
		PhoneNumber: NormalizeWaid(payload.Phone),
		Type:        "text",
	}
	msg.Message.Text = payload.Text

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/messages/send", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("WhatsApp service returned status %d: %v", resp.StatusCode, errorBody)
	}

	r.logger.Info("Notification sent",
		"phone", msg.PhoneNumber,
		"type", payload.Type)

	return nil
}
