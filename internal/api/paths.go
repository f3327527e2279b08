// Package api provides the Gemini API client implementation.
package api

// GJSON paths for extracting values from generateContent responses.
const (
	PathCandidates      = "candidates"
	PathCandidateCount  = "candidates.#"
	PathFirstParts      = "candidates.0.content.parts"
	PathFinishReason    = "candidates.0.finishReason"
	PathBlockReason     = "promptFeedback.blockReason"
	PathModelVersion    = "modelVersion"
	PathPromptTokens    = "usageMetadata.promptTokenCount"
	PathCandidateTokens = "usageMetadata.candidatesTokenCount"
	PathErrorMessage    = "error.message"

	// Relative to a part
	PathPartText    = "text"
	PathPartThought = "thought"
)

// Finish reasons that mean the answer was withheld
var blockingFinishReasons = map[string]bool{
	"SAFETY":             true,
	"RECITATION":         true,
	"BLOCKLIST":          true,
	"PROHIBITED_CONTENT": true,
	"SPII":               true,
}
