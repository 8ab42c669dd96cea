package core

import (
	"errors"
	"fmt"

	"medsimplify/pkg"
)

// ErrGenerationFailed matches every failure returned by Simplify when the
// generation service produced no text.
var ErrGenerationFailed = errors.New("generation failed")

// GenerationFailure carries the generation service error for one request.
// The cause is surfaced unchanged; nothing is retried.
type GenerationFailure struct {
	Strategy pkg.Strategy
	Audience pkg.Audience
	Model    string
	Err      error
}

func (f *GenerationFailure) Error() string {
	return fmt.Sprintf("%s with %s for %s audience: %v", ErrGenerationFailed, f.Strategy, f.Audience, f.Err)
}

func (f *GenerationFailure) Unwrap() []error { return []error{ErrGenerationFailed, f.Err} }
