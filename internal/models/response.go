package models

// ModelOutput is the decoded result of one generateContent call
type ModelOutput struct {
	// Text is the concatenated text of the first candidate's parts,
	// excluding thought parts.
	Text         string
	FinishReason string
	ModelVersion string
	PromptTokens int
	OutputTokens int
}

// IsTruncated reports whether generation stopped on the token limit
func (m *ModelOutput) IsTruncated() bool {
	return m != nil && m.FinishReason == "MAX_TOKENS"
}
