package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropic_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var body anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body.Model)
		assert.Equal(t, 6000, body.MaxTokens)
		assert.Equal(t, "be a designer", body.System)
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "a calm medical theme", body.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"name\":\"Calm\"}"}]}`))
	}))
	defer server.Close()

	c := NewAnthropic("test-key", server.URL, "test-model", server.Client())
	got, err := c.Complete(context.Background(), Request{
		System:      "be a designer",
		User:        "a calm medical theme",
		MaxTokens:   6000,
		Temperature: 0.2,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"name":"Calm"}`, got)
}

func TestAnthropic_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: ErrRateLimited},
		{name: "payment required", status: http.StatusPaymentRequired, wantErr: ErrPaymentRequired},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUpstream},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			}))
			defer server.Close()

			c := NewAnthropic("k", server.URL, "", server.Client())
			_, err := c.Complete(context.Background(), Request{User: "x"})

			assert.ErrorIs(t, err, tt.wantErr)
			var upErr *UpstreamError
			require.ErrorAs(t, err, &upErr)
			assert.Equal(t, tt.status, upErr.Status)
		})
	}
}

func TestAnthropic_MissingText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	c := NewAnthropic("k", server.URL, "", server.Client())
	_, err := c.Complete(context.Background(), Request{User: "x"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestAnthropic_NotConfigured(t *testing.T) {
	c := NewAnthropic("", "", "", nil)
	_, err := c.Complete(context.Background(), Request{User: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnthropic_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewAnthropic("k", server.URL, "", server.Client())
	_, err := c.Complete(ctx, Request{User: "x"})
	assert.ErrorIs(t, err, ErrUpstream)
}
