package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appnotify "github.com/masonbass/retail-api/internal/application/notify"
)

func TestWhatsAppNotifier_EnviaTexto(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		got     whatsAppMessage
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	n := NewWhatsAppNotifier("tok", "12345", "v22.0", "+573001112233")
	n.baseURL = srv.URL

	err := n.Notify(context.Background(), appnotify.Event{Type: appnotify.EventOrderPlaced, Message: "Nueva orden"})
	require.NoError(t, err)

	assert.Equal(t, "/v22.0/12345/messages", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "individual", got.RecipientType)
	assert.Equal(t, "573001112233", got.To)
	assert.Equal(t, "text", got.Type)
	assert.Equal(t, "Nueva orden", got.Text.Body)
	assert.False(t, got.Text.PreviewURL)
}

func TestWhatsAppNotifier_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","code":190}}`))
	}))
	defer srv.Close()

	n := NewWhatsAppNotifier("bad", "12345", "", "573001112233")
	n.baseURL = srv.URL

	err := n.Notify(context.Background(), appnotify.Event{Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "Invalid OAuth access token")
}

func TestWhatsAppNotifier_SinCredenciales(t *testing.T) {
	n := NewWhatsAppNotifier("", "", "", "")
	assert.Error(t, n.Notify(context.Background(), appnotify.Event{Message: "x"}))
}
