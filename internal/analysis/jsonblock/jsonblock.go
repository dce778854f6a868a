// Package jsonblock extracts a JSON payload from free-form model output. The
// model is asked to respond with bare JSON but routinely wraps it in a
// markdown code fence anyway.
package jsonblock

import "strings"

// Extract returns the JSON text from a model response, stripping an optional
// ```json or ``` fence. Input without fences is returned trimmed.
func Extract(text string) string {
	trimmed := strings.TrimSpace(text)

	if _, after, ok := strings.Cut(trimmed, "```json"); ok {
		if inner, _, ok := strings.Cut(after, "```"); ok {
			return strings.TrimSpace(inner)
		}
		return strings.TrimSpace(after)
	}

	if _, after, ok := strings.Cut(trimmed, "```"); ok {
		if inner, _, ok := strings.Cut(after, "```"); ok {
			return strings.TrimSpace(inner)
		}
		return strings.TrimSpace(after)
	}

	return trimmed
}
