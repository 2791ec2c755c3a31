// Package domain defines the typed request and response model for the
// creator-growth platform. It covers the four generative operation kinds
// (insights, astrology, palm, combined creator analysis), the deterministic
// goal planner, and the profile statistics provider.
//
// Domain types carry no transport or prompt detail; the LLM orchestration
// layer consumes requests from this package and produces responses into it,
// and nothing else crosses that boundary.
package domain

// OperationKind identifies one of the fixed generative use-cases. The kind
// determines the prompt template, the required field set the model must
// return, and whether the call is multi-modal.
type OperationKind string

const (
	// OpInsights generates a growth-strategy document from creator metrics.
	OpInsights OperationKind = "insights"

	// OpAstrology generates a zodiac reading from birth details.
	OpAstrology OperationKind = "astrology"

	// OpPalm generates a palm reading from an uploaded palm image (vision).
	OpPalm OperationKind = "palm"

	// OpCreatorAnalysis generates the combined astrology + palm + strategy
	// reading from a palm image and full creator profile (vision).
	OpCreatorAnalysis OperationKind = "creator_analysis"
)

// Vision reports whether the operation carries an image payload and
// therefore requires a vision-capable model.
func (k OperationKind) Vision() bool {
	return k == OpPalm || k == OpCreatorAnalysis
}

// String returns the wire name of the operation kind.
func (k OperationKind) String() string { return string(k) }
