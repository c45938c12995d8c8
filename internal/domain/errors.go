package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound is returned when a job has no finished movie on disk
	ErrJobNotFound = errors.New("job not found")

	// ErrSynthesis is returned when the text-to-speech engine fails
	ErrSynthesis = errors.New("narration synthesis failed")

	// ErrComposition is returned when the video tool fails while building a movie
	ErrComposition = errors.New("movie composition failed")

	// ErrExtraction is returned when the video tool fails while grabbing a preview frame
	ErrExtraction = errors.New("preview extraction failed")

	// ErrStorage is returned when an upload or intermediate file cannot be written
	ErrStorage = errors.New("storage write failed")

	// ErrInvalidFilename is returned for upload names that cannot be staged safely
	ErrInvalidFilename = errors.New("invalid upload filename")
)

// CommandError carries the combined output of a failed external process
type CommandError struct {
	Name   string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s exited: %v", e.Name, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Tail returns at most n trailing bytes of the command output
func (e *CommandError) Tail(n int) string {
	if len(e.Output) <= n {
		return e.Output
	}
	return e.Output[len(e.Output)-n:]
}
