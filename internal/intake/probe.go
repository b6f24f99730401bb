package intake

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// MinDimension is the smallest accepted width and height, in pixels.
const MinDimension = 64

// Probe failures. Unreadable means the bytes could not be decoded at all;
// TooSmall means the image decoded fine but is below MinDimension. The UI
// presents them differently, so they stay distinct.
var (
	ErrUnreadable = errors.New("couldn't read image")
	ErrTooSmall   = fmt.Errorf("resolution too small, need at least %dx%d", MinDimension, MinDimension)
)

// Probe decodes just enough of the file to learn its pixel dimensions.
// No policy is applied here; callers decide what dimensions are acceptable.
func Probe(file *CandidateFile) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return 0, 0, ErrUnreadable
	}
	return cfg.Width, cfg.Height, nil
}

// Admit runs the full intake policy: upload validation, dimension probe,
// minimum-resolution check. It is the only constructor of ValidatedImage.
func Admit(file *CandidateFile) (*ValidatedImage, error) {
	candidate, err := Validate(file)
	if err != nil {
		return nil, err
	}
	width, height, err := Probe(candidate)
	if err != nil {
		return nil, err
	}
	if width < MinDimension || height < MinDimension {
		return nil, ErrTooSmall
	}
	return &ValidatedImage{CandidateFile: *candidate, Width: width, Height: height}, nil
}
