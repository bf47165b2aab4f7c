package llm

// charsPerToken is the average number of characters per token for English
// text. Real tokenizers vary; this is only used for logging prompt size.
const charsPerToken = 4

// EstimateTokens returns a rough token count for a string.
func EstimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	return (len(s) + charsPerToken - 1) / charsPerToken // round up
}

// EstimateRequestTokens estimates the prompt side of a request, including
// per-message framing for the system and user messages.
func EstimateRequestTokens(req Request) int {
	tokens := 4 + EstimateTokens(req.Prompt)
	if req.System != "" {
		tokens += 4 + EstimateTokens(req.System)
	}
	return tokens
}
