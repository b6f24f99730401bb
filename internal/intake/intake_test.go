package intake

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{G: 180, A: 255}}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func candidate(mime string, data []byte) *CandidateFile {
	return &CandidateFile{Name: "upload.png", MIME: mime, Size: int64(len(data)), Data: data}
}

func TestValidateRejectsMissingFile(t *testing.T) {
	if _, err := Validate(nil); !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile for nil, got %v", err)
	}
	if _, err := Validate(&CandidateFile{MIME: "image/png"}); !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile for empty payload, got %v", err)
	}
}

func TestValidateRejectsNonImageType(t *testing.T) {
	types := []string{"text/plain", "application/pdf", "video/mp4", ""}
	for _, mime := range types {
		if _, err := Validate(candidate(mime, []byte("payload"))); !errors.Is(err, ErrInvalidType) {
			t.Fatalf("expected ErrInvalidType for %q, got %v", mime, err)
		}
	}
}

func TestValidateSizeBoundary(t *testing.T) {
	file := candidate("image/jpeg", []byte("payload"))

	file.Size = MaxFileSize
	if _, err := Validate(file); err != nil {
		t.Fatalf("exactly MaxFileSize should pass, got %v", err)
	}

	file.Size = MaxFileSize + 1
	if _, err := Validate(file); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge one byte over, got %v", err)
	}
}

func TestValidateChecksTypeBeforeSize(t *testing.T) {
	file := candidate("text/plain", []byte("payload"))
	file.Size = MaxFileSize + 1
	if _, err := Validate(file); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("first failing rule should win, got %v", err)
	}
}

func TestProbeReportsDimensions(t *testing.T) {
	file := candidate("image/png", encodePNG(t, 80, 60))
	width, height, err := Probe(file)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if width != 80 || height != 60 {
		t.Fatalf("expected 80x60, got %dx%d", width, height)
	}
}

func TestProbeRejectsUndecodableBytes(t *testing.T) {
	file := candidate("image/png", []byte("definitely not an image"))
	if _, _, err := Probe(file); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestAdmitEnforcesMinimumResolution(t *testing.T) {
	cases := []struct {
		width, height int
		wantErr       error
	}{
		{63, 64, ErrTooSmall},
		{64, 63, ErrTooSmall},
		{64, 64, nil},
		{800, 600, nil},
	}
	for _, tc := range cases {
		file := candidate("image/png", encodePNG(t, tc.width, tc.height))
		image, err := Admit(file)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("%dx%d: expected %v, got %v", tc.width, tc.height, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%dx%d: unexpected error %v", tc.width, tc.height, err)
		}
		if image.Width != tc.width || image.Height != tc.height {
			t.Fatalf("expected annotated %dx%d, got %dx%d", tc.width, tc.height, image.Width, image.Height)
		}
	}
}

func TestAdmitKeepsUnreadableAndTooSmallDistinct(t *testing.T) {
	garbage := candidate("image/png", []byte("garbage"))
	if _, err := Admit(garbage); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}

	tiny := candidate("image/png", encodePNG(t, 10, 10))
	if _, err := Admit(tiny); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("expected ErrTooSmall, got %v", err)
	}
}
