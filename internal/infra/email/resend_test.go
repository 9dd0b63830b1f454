package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-api/internal/common"
	"portfolio-api/internal/domain/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*ResendClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewResendClient("test-key")
	client.baseURL = srv.URL
	client.httpClient = srv.Client()
	return client, srv
}

func TestSendBuildsResendPayload(t *testing.T) {
	var got map[string]any
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	id, err := client.Send(context.Background(), &mail.Message{
		From:    "Updates <updates@example.com>",
		To:      "user@example.com",
		ReplyTo: "owner@example.com",
		Subject: "Subscription confirmed",
		HTML:    "<p>hi</p>",
		Text:    "hi",
		Headers: map[string]string{"List-Unsubscribe": "<https://site.example/unsubscribe?email=user%40example.com>"},
	})
	require.NoError(t, err)
	assert.Equal(t, "email_123", id)

	assert.Equal(t, []any{"user@example.com"}, got["to"])
	assert.Equal(t, "owner@example.com", got["reply_to"])
	headers, ok := got["headers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "<https://site.example/unsubscribe?email=user%40example.com>", headers["List-Unsubscribe"])
}

func TestErrorMessagePassesThroughVerbatim(t *testing.T) {
	// The subscription coordinator classifies provider errors by their
	// message text, so the exact wording must survive the client.
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"statusCode":409,"message":"Contact already exists"}`))
	}))
	defer srv.Close()

	err := client.CreateContact(context.Background(), "aud_123", "user@example.com")
	require.Error(t, err)

	var provider *common.ProviderError
	require.ErrorAs(t, err, &provider)
	assert.Equal(t, "Contact already exists", provider.Message)
}

func TestGetContact(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/audiences/aud_123/contacts/user@example.com", r.URL.Path)
		_, _ = w.Write([]byte(`{"object":"contact","id":"c_1","email":"user@example.com","unsubscribed":true}`))
	}))
	defer srv.Close()

	contact, err := client.GetContact(context.Background(), "aud_123", "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", contact.Email)
	assert.True(t, contact.Unsubscribed)
}

func TestGetContactNotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"statusCode":404,"message":"Contact not found"}`))
	}))
	defer srv.Close()

	_, err := client.GetContact(context.Background(), "aud_123", "ghost@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateAndRemoveContact(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	require.NoError(t, client.UpdateContact(context.Background(), "aud_123", "user@example.com", true))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/audiences/aud_123/contacts/user@example.com", gotPath)
	assert.Equal(t, true, gotBody["unsubscribed"])

	require.NoError(t, client.RemoveContact(context.Background(), "aud_123", "user@example.com"))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestErrorWithoutBodyGetsStatusMessage(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := client.Send(context.Background(), &mail.Message{To: "user@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}
