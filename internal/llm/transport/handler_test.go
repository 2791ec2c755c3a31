package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "github.com/astroforge/astroforge/internal/llm/errors"
)

func textRequest() *Request {
	return &Request{
		Operation:    "insights",
		Model:        "gpt-4o-mini",
		Parts:        []Part{TextPart("analyze this profile")},
		Temperature:  0.7,
		MaxTokens:    2000,
		JSONResponse: true,
	}
}

func TestHTTPHandler_Success(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	h := NewHTTPHandler(nil, srv.URL, "secret")
	resp, err := h.Handle(context.Background(), textRequest())
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, resp.Content)
	assert.Equal(t, len(resp.Content), resp.Chars)
	assert.Greater(t, resp.Latency, time.Duration(0))

	// Wire body carries the resolved invocation.
	assert.Equal(t, "gpt-4o-mini", captured["model"])
	assert.Equal(t, 0.7, captured["temperature"])
	assert.Equal(t, float64(2000), captured["max_tokens"])
	assert.Equal(t, map[string]any{"type": "json_object"}, captured["response_format"])

	messages := captured["messages"].([]any)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	// A single text part flattens to a plain string.
	assert.Equal(t, "analyze this profile", msg["content"])
}

func TestHTTPHandler_MultiPartContent(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer srv.Close()

	req := textRequest()
	req.Parts = []Part{
		ImagePart("data:image/jpeg;base64,abc"),
		TextPart("read this palm"),
	}

	h := NewHTTPHandler(nil, srv.URL, "secret")
	_, err := h.Handle(context.Background(), req)
	require.NoError(t, err)

	content := captured["messages"].([]any)[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)

	imagePart := content[0].(map[string]any)
	assert.Equal(t, "image_url", imagePart["type"])
	assert.Equal(t, map[string]any{
		"url":    "data:image/jpeg;base64,abc",
		"detail": "high",
	}, imagePart["image_url"])

	textPart := content[1].(map[string]any)
	assert.Equal(t, "text", textPart["type"])
	assert.Equal(t, "read this palm", textPart["text"])
}

func TestHTTPHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantKind   llmerrors.Kind
		wantStatus int
	}{
		{name: "unauthorized", status: 401, wantKind: llmerrors.KindAuthRejected, wantStatus: 401},
		{name: "rate_limited", status: 429, wantKind: llmerrors.KindRateLimited, wantStatus: 429},
		{name: "quota", status: 402, wantKind: llmerrors.KindQuotaExceeded, wantStatus: 402},
		{name: "server_error", status: 500, wantKind: llmerrors.KindUpstreamServerError, wantStatus: 500},
		{name: "not_found", status: 404, wantKind: llmerrors.KindUpstreamServerError, wantStatus: 404},
		{name: "service_unavailable", status: 503, wantKind: llmerrors.KindUpstreamServerError, wantStatus: 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			h := NewHTTPHandler(nil, srv.URL, "secret")
			_, err := h.Handle(context.Background(), textRequest())

			var lerr *llmerrors.Error
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, tt.wantKind, lerr.Kind)
			assert.Equal(t, tt.wantStatus, lerr.StatusCode)
		})
	}
}

func TestHTTPHandler_ErrorBodyTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		for range 100 {
			_, _ = w.Write([]byte("very long upstream error body "))
		}
	}))
	defer srv.Close()

	h := NewHTTPHandler(nil, srv.URL, "secret")
	_, err := h.Handle(context.Background(), textRequest())
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 500)
}

func TestHTTPHandler_TimeoutBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	req := textRequest()
	req.Timeout = 50 * time.Millisecond

	h := NewHTTPHandler(nil, srv.URL, "secret")
	_, err := h.Handle(context.Background(), req)

	kind, ok := llmerrors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, llmerrors.KindTimeout, kind)
}

func TestHTTPHandler_ConnectionRefused(t *testing.T) {
	// Grab a port nothing is listening on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	h := NewHTTPHandler(nil, endpoint, "secret")
	_, err := h.Handle(context.Background(), textRequest())

	kind, ok := llmerrors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, llmerrors.KindTransportFailure, kind)
}

func TestHTTPHandler_MalformedEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not_json", body: "<html>gateway error</html>"},
		{name: "no_choices", body: `{"choices": []}`},
		{name: "empty_content", body: `{"choices":[{"message":{"content":""}}]}`},
		{name: "missing_message", body: `{"choices":[{}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			h := NewHTTPHandler(nil, srv.URL, "secret")
			_, err := h.Handle(context.Background(), textRequest())

			kind, ok := llmerrors.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, llmerrors.KindMalformedResponse, kind)
		})
	}
}

func TestChain_Order(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next Handler) Handler {
			return HandlerFunc(func(ctx context.Context, req *Request) (*Completion, error) {
				order = append(order, name+"_before")
				resp, err := next.Handle(ctx, req)
				order = append(order, name+"_after")
				return resp, err
			})
		}
	}

	core := HandlerFunc(func(ctx context.Context, req *Request) (*Completion, error) {
		order = append(order, "core")
		return &Completion{}, nil
	})

	_, err := Chain(core, mw("outer"), mw("inner")).Handle(context.Background(), textRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"outer_before", "inner_before", "core", "inner_after", "outer_after",
	}, order)
}
