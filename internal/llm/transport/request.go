// Package transport issues single requests to the generative endpoint and
// maps transport-level failures to the orchestration error taxonomy. It
// exposes a composable Handler/Middleware chain so resilience and
// observability concerns layer over the core HTTP call without touching it.
package transport

import "time"

// Part content types on the chat-completions wire format.
const (
	PartText  = "text"
	PartImage = "image_url"
)

// Part is one ordered element of a message's content. Text parts carry the
// instruction block; image parts carry a base64 data URL.
type Part struct {
	Type     string
	Text     string
	ImageURL string
}

// TextPart builds an instruction part.
func TextPart(text string) Part { return Part{Type: PartText, Text: text} }

// ImagePart builds an inline image part from a data URL.
func ImagePart(dataURL string) Part { return Part{Type: PartImage, ImageURL: dataURL} }

// Request is the fully-resolved model invocation sent over the wire.
// It is derived deterministically from a domain request and never persisted.
type Request struct {
	// Operation labels the logical use-case for logging only.
	Operation string

	// Model is the exact model identifier to invoke.
	Model string

	// Parts is the ordered content of the single user message. Multi-modal
	// invocations place the image part first, the instruction part second.
	Parts []Part

	// Sampling parameters.
	Temperature float64
	MaxTokens   int

	// JSONResponse demands structured-JSON output from the endpoint.
	JSONResponse bool

	// Timeout is the hard wall-clock budget for this call.
	Timeout time.Duration

	// TraceID correlates log lines for one orchestration call.
	TraceID string
}

// Completion is the unprocessed text payload returned by the endpoint,
// plus call metadata. Consumed only by the response extractor.
type Completion struct {
	Content string
	Chars   int
	Latency time.Duration
}
