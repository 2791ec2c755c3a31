package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	llmerrors "github.com/astroforge/astroforge/internal/llm/errors"
	"github.com/astroforge/astroforge/internal/llm/transport"
)

// NewLoggingMiddleware creates observability middleware for the transport
// pipeline. It emits exactly one structured line per endpoint call recording
// the model, message part count, and either response length or error kind.
// The line is operational visibility only; nothing reads it for control flow.
func NewLoggingMiddleware(logger *slog.Logger) transport.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "llm")

	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Completion, error) {
			if req.TraceID == "" {
				req.TraceID = uuid.New().String()
			}

			start := time.Now()
			resp, err := next.Handle(ctx, req)
			elapsed := time.Since(start)

			if err != nil {
				kind, _ := llmerrors.KindOf(err)
				logger.Error("endpoint call failed",
					"trace_id", req.TraceID,
					"operation", req.Operation,
					"model", req.Model,
					"parts", len(req.Parts),
					"error_kind", string(kind),
					"elapsed_ms", elapsed.Milliseconds(),
					"error", err)
				return nil, err
			}

			logger.Info("endpoint call complete",
				"trace_id", req.TraceID,
				"operation", req.Operation,
				"model", req.Model,
				"parts", len(req.Parts),
				"response_chars", resp.Chars,
				"elapsed_ms", elapsed.Milliseconds())
			return resp, nil
		})
	}
}
