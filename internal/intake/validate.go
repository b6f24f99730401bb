// Package intake admits user-submitted files into the analysis pipeline.
// It applies the upload policy (presence, declared type, size) and probes
// the image header for its pixel dimensions. Files that clear both checks
// become ValidatedImages; everything downstream consumes those only.
package intake

import (
	"errors"
	"fmt"
	"strings"
)

// MaxFileSize is the largest upload accepted, in bytes.
const MaxFileSize = 5 * 1024 * 1024

// Validation failures, first failing rule wins.
var (
	ErrMissingFile = errors.New("no file selected")
	ErrInvalidType = errors.New("file is not an image")
	ErrTooLarge    = fmt.Errorf("file exceeds %d MiB", MaxFileSize/(1024*1024))
)

// CandidateFile is a user-selected file before any policy has been applied.
type CandidateFile struct {
	Name string
	MIME string
	Size int64
	Data []byte
}

// ValidatedImage is a CandidateFile that passed type, size, and resolution
// policy, annotated with its pixel dimensions. It is never mutated.
type ValidatedImage struct {
	CandidateFile
	Width  int
	Height int
}

// Validate checks a candidate against the upload policy. Rules run in
// order — presence, declared type, size — and the first failure is returned
// alone; failures are not accumulated.
func Validate(file *CandidateFile) (*CandidateFile, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, ErrMissingFile
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(file.MIME)), "image/") {
		return nil, ErrInvalidType
	}
	if file.Size > MaxFileSize {
		return nil, ErrTooLarge
	}
	return file, nil
}
