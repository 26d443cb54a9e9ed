package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebhookClientSend(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewWebhookClient(srv.URL).Send(context.Background(), "Weekly summary"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.Text != "Weekly summary" || got.Content != "Weekly summary" {
		t.Errorf("payload = %+v", got)
	}
}

func TestWebhookClientSendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer srv.Close()

	err := NewWebhookClient(srv.URL).Send(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "invalid token") || !strings.Contains(err.Error(), "403") {
		t.Errorf("Send error = %v, want 403 with API message", err)
	}
}

func TestWebhookClientRequiresURL(t *testing.T) {
	if err := NewWebhookClient("").Send(context.Background(), "hi"); err == nil {
		t.Error("Send without URL should fail")
	}
}
