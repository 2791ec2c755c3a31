package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	llmerrors "github.com/astroforge/astroforge/internal/llm/errors"
)

// bodyDetailCap bounds how much of an upstream error body is carried into
// error detail, keeping operator logs readable.
const bodyDetailCap = 300

// Handler processes model invocations through a composable middleware
// pipeline. The core handler makes the HTTP call; middleware layers add
// retry and logging around it.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Completion, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(context.Context, *Request) (*Completion, error)

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Completion, error) {
	return f(ctx, req)
}

// Middleware transforms a Handler into an enhanced Handler.
type Middleware func(Handler) Handler

// Chain builds a middleware pipeline around a core handler. Middleware
// executes in the order provided, first middleware outermost.
func Chain(h Handler, middlewares ...Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// NewHTTPHandler creates the core handler that POSTs invocations to the
// chat-completions endpoint. The supplied client should carry no timeout of
// its own; the per-request budget governs each call.
func NewHTTPHandler(client *http.Client, endpoint, apiKey string) Handler {
	if client == nil {
		client = &http.Client{}
	}
	return &httpHandler{client: client, endpoint: endpoint, apiKey: apiKey}
}

type httpHandler struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// chat-completions wire envelope, request side.
type wireMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type wireBody struct {
	Model          string        `json:"model"`
	Messages       []wireMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat any           `json:"response_format,omitempty"`
}

// Handle issues the single network call for one orchestration. The context
// carries the wall-clock budget; cancellation aborts the in-flight request.
func (h *httpHandler) Handle(ctx context.Context, req *Request) (*Completion, error) {
	reqCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := h.buildRequest(reqCtx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	httpResp, err := h.client.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, llmerrors.Wrap(llmerrors.KindTransportFailure, err, "reading response body: %v", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, llmerrors.FromStatus(httpResp.StatusCode, truncate(string(body), bodyDetailCap))
	}

	content, err := extractContent(body)
	if err != nil {
		return nil, err
	}

	return &Completion{Content: content, Chars: len(content), Latency: latency}, nil
}

func (h *httpHandler) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	body := wireBody{
		Model:       req.Model,
		Messages:    []wireMessage{{Role: "user", Content: encodeContent(req.Parts)}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONResponse {
		body.ResponseFormat = map[string]string{"type": "json_object"}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, llmerrors.Wrap(llmerrors.KindTransportFailure, err, "marshaling request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, llmerrors.Wrap(llmerrors.KindTransportFailure, err, "building request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)
	return httpReq, nil
}

// encodeContent flattens a single text part to a plain string, matching the
// endpoint's simpler form; multi-part content keeps the ordered typed list.
func encodeContent(parts []Part) any {
	if len(parts) == 1 && parts[0].Type == PartText {
		return parts[0].Text
	}
	out := make([]map[string]any, 0, len(parts))
	for _, p := range parts {
		switch p.Type {
		case PartImage:
			out = append(out, map[string]any{
				"type":      PartImage,
				"image_url": map[string]string{"url": p.ImageURL, "detail": "high"},
			})
		default:
			out = append(out, map[string]any{"type": PartText, "text": p.Text})
		}
	}
	return out
}

// extractContent pulls choices[0].message.content out of a success envelope.
// A missing or empty structure is a malformed response, never an empty string.
func extractContent(body []byte) (string, error) {
	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", llmerrors.Wrap(llmerrors.KindMalformedResponse, err,
			"undecodable response envelope: %v", err)
	}
	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		return "", llmerrors.New(llmerrors.KindMalformedResponse,
			"response envelope has no message content")
	}
	return envelope.Choices[0].Message.Content, nil
}

// classifyTransportError maps connection-level failures to the taxonomy.
// Deadline expiry becomes Timeout; everything else, including DNS, refused,
// reset, and caller cancellation, becomes TransportFailure with the cause.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return llmerrors.Wrap(llmerrors.KindTimeout, err, "request exceeded wall-clock budget")
	}
	type timeouter interface{ Timeout() bool }
	var te timeouter
	if errors.As(err, &te) && te.Timeout() {
		return llmerrors.Wrap(llmerrors.KindTimeout, err, "request timed out: %v", err)
	}
	return llmerrors.Wrap(llmerrors.KindTransportFailure, err, "contacting endpoint: %v", err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s... (%d bytes total)", s[:n], len(s))
}
