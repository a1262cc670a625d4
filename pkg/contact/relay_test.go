package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopebridge/hopebridge/pkg/config"
	"github.com/hopebridge/hopebridge/pkg/model"
)

var testCtx = context.Background()

func validMessage() *Message {
	return &Message{
		Name:    "Ada Lovelace",
		Email:   "ada@example.org",
		Subject: "Volunteering",
		Message: "I'd like to help with the <b>spring</b> appeal & more.",
	}
}

func TestRelay_Send(t *testing.T) {
	var received Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	relay := NewRelay(Config{Endpoint: srv.URL})
	require.NoError(t, relay.Send(testCtx, validMessage()))

	assert.Equal(t, "Ada Lovelace", received.Name)
	assert.Equal(t, "ada@example.org", received.Email)
	assert.Equal(t, "I'd like to help with the spring appeal & more.", received.Message)
}

func TestRelay_Upstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"form not found"}`))
	}))
	defer srv.Close()

	relay := NewRelay(Config{Endpoint: srv.URL})
	err := relay.Send(testCtx, validMessage())
	require.Error(t, err)

	upstream, ok := err.(*UpstreamError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, upstream.Status)
	assert.Contains(t, upstream.Body, "form not found")
}

func TestRelay_Timeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()
	defer close(done)

	relay := NewRelay(Config{Endpoint: srv.URL, Timeout: config.Duration{Duration: 50 * time.Millisecond}})
	assert.Error(t, relay.Send(testCtx, validMessage()))
}

func TestRelay_NotConfigured(t *testing.T) {
	relay := NewRelay(Config{})
	assert.Equal(t, ErrNotConfigured, relay.Send(testCtx, validMessage()))
}

func TestRelay_Validation(t *testing.T) {
	relay := NewRelay(Config{Endpoint: "http://localhost:1"})

	err := relay.Send(testCtx, &Message{Name: "<script>alert(1)</script>", Email: "nope"})
	require.Error(t, err)

	verr, ok := err.(*model.ValidationError)
	require.True(t, ok)

	fields := verr.Fields()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "message")
}

func TestRelay_TextStripsEncodedMarkup(t *testing.T) {
	relay := NewRelay(Config{})

	tests := []struct {
		in  string
		out string
	}{
		{"<b>bold</b> & plain", "bold & plain"},
		{"&lt;b&gt;bold&lt;/b&gt;", "bold"},
		{"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;", ""},
		{"  Tom &amp; Jerry  ", "Tom & Jerry"},
	}

	for _, tt := range tests {
		out := relay.text(tt.in)
		assert.Equal(t, tt.out, out, tt.in)
		assert.NotContains(t, out, "<")
	}
}
