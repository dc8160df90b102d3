package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// charsPerToken is the rough number of characters in one model token.
const charsPerToken = 4

// EstimateTokens approximates the token count of v as the length of its
// compact JSON encoding divided by four. It is a heuristic for display, not
// a tokenizer. Values that cannot be encoded are measured by their
// fmt.Sprint form.
func EstimateTokens(v any) int {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return len(fmt.Sprint(v)) / charsPerToken
	}
	// Encode terminates the value with a newline.
	return (buf.Len() - 1) / charsPerToken
}
