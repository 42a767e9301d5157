// Package errors defines the typed failure kinds of the resume pipeline and
// a small retry helper. Three kinds matter to the controller: input errors
// abort a run before any round executes, generation errors are recorded and
// counted against the iteration budget, and scoring errors are recovered
// locally into worst-case reports.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// InputError represents invalid caller input (blank job description, broken
// profile file). Terminal: no round runs after one of these.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// NewInputError builds an InputError for the named field.
func NewInputError(field, format string, args ...any) *InputError {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// GenerationError wraps a failed or timed-out call to the external content
// generator. It does not crash the controller; the round is marked failed.
type GenerationError struct {
	Err      error
	Round    int
	TimedOut bool
}

func (e *GenerationError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("generation timed out on round %d: %v", e.Round, e.Err)
	}
	return fmt.Sprintf("generation failed on round %d: %v", e.Round, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ScoringError marks a defect inside the scorer or validator. The controller
// substitutes a zero report so the round still reaches a decision.
type ScoringError struct {
	Component string
	Err       error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring failed in %s: %v", e.Component, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }

// IsInput reports whether err is (or wraps) an InputError.
func IsInput(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// IsGeneration reports whether err is (or wraps) a GenerationError.
func IsGeneration(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsScoring reports whether err is (or wraps) a ScoringError.
func IsScoring(err error) bool {
	var scoreErr *ScoringError
	return errors.As(err, &scoreErr)
}

// IsTransient reports whether err is worth retrying: network failures,
// deadline expiry inside a round, or rate-limit style messages from the LLM
// provider. Input errors are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if IsInput(err) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	lower := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"rate limit",
		"too many requests",
		"overloaded",
		"connection refused",
		"connection reset",
		"temporarily unavailable",
		"timeout",
		"503",
		"529",
	} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
