package drkube

import (
	"context"
	"strings"

	derrors "github.com/drkube/drkube/internal/errors"
	"github.com/drkube/drkube/internal/logger"
)

// Fallback answers shown in place of a reply.
const (
	NoResponse      = "No response from DrKube."
	ErrorContacting = "Error contacting DrKube."
)

// IsBlank reports whether question has nothing but whitespace. Blank
// questions are never sent.
func IsBlank(question string) bool {
	return strings.TrimSpace(question) == ""
}

// Consult asks once and turns the outcome into the answer to display.
// An empty reply becomes NoResponse. Any failure, including a panic inside
// the asker, is logged and becomes ErrorContacting; the error is returned
// for callers that want more than the answer text.
func Consult(ctx context.Context, a Asker, question string) (string, error) {
	text, err := derrors.RecoverWithResult(func() (string, error) {
		return a.Ask(ctx, question)
	})
	if err != nil {
		logger.Error("Failed to contact DrKube: %v", err)
		return ErrorContacting, err
	}
	if text == "" {
		return NoResponse, nil
	}
	return text, nil
}
