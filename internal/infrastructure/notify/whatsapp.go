package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appnotify "github.com/masonbass/retail-api/internal/application/notify"
)

var _ appnotify.Notifier = (*WhatsAppNotifier)(nil)

const graphAPIBaseURL = "https://graph.facebook.com"

// WhatsAppNotifier envía cada evento como mensaje de texto al número del administrador
// usando la Cloud API de WhatsApp (Meta Graph API).
type WhatsAppNotifier struct {
	token         string
	phoneNumberID string
	apiVersion    string
	adminPhone    string
	baseURL       string
	httpClient    *http.Client
}

// NewWhatsAppNotifier construye el adaptador. adminPhone admite el prefijo '+'.
func NewWhatsAppNotifier(token, phoneNumberID, apiVersion, adminPhone string) *WhatsAppNotifier {
	if apiVersion == "" {
		apiVersion = "v22.0"
	}
	return &WhatsAppNotifier{
		token:         token,
		phoneNumberID: phoneNumberID,
		apiVersion:    apiVersion,
		adminPhone:    strings.TrimPrefix(strings.TrimSpace(adminPhone), "+"),
		baseURL:       graphAPIBaseURL,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ── Estructuras del protocolo de mensajes ─────────────────────────────────────

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	RecipientType    string       `json:"recipient_type"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

type whatsAppText struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type whatsAppError struct {
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Name identificador para logs.
func (w *WhatsAppNotifier) Name() string { return "whatsapp" }

// Notify publica ev.Message. Cualquier respuesta distinta de 2xx es error.
func (w *WhatsAppNotifier) Notify(ctx context.Context, ev appnotify.Event) error {
	if w.token == "" || w.phoneNumberID == "" || w.adminPhone == "" {
		return fmt.Errorf("whatsapp: credenciales incompletas")
	}

	body, err := json.Marshal(whatsAppMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               w.adminPhone,
		Type:             "text",
		Text:             whatsAppText{PreviewURL: false, Body: ev.Message},
	})
	if err != nil {
		return fmt.Errorf("whatsapp: serializar mensaje: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", w.baseURL, w.apiVersion, w.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: construir request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: enviar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr whatsAppError
	if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != nil {
		return fmt.Errorf("whatsapp: HTTP %d (code %d): %s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Message)
	}
	return fmt.Errorf("whatsapp: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
