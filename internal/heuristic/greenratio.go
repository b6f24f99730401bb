// Package heuristic provides a cheap local plausibility check that an image
// shows foliage, run before any network call. It is advisory only: a low
// score surfaces a warning but never blocks analysis.
package heuristic

import (
	"bytes"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	// SampleSize is the side length of the fixed downsample buffer.
	SampleSize = 64
	// WarnThreshold is the score below which the image probably does not
	// show the expected subject.
	WarnThreshold = 0.18

	epsilon = 1e-9
)

// WarnMessage is shown alongside low scores.
const WarnMessage = "image may not match expected subject — analysis may be inaccurate"

// Score decodes the image, downsamples it to SampleSize×SampleSize, and
// returns the green ratio. Decode failures fail open: the score is 0 ("does
// not look like the expected subject") and no error is reported, so the user
// can still force analysis of any file.
func Score(data []byte) float64 {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	return Ratio(downsample(img))
}

// Ratio computes the green ratio over a sample buffer: the sum of the green
// channel divided by the sum of per-pixel average luminance (r+g+b)/3.
// A grayscale buffer scores 1.0; pure green approaches 3.0; red or blue
// dominated buffers fall toward 0. Pure function of the buffer contents.
func Ratio(sample *image.RGBA) float64 {
	var greenSum, lumSum float64
	bounds := sample.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			offset := sample.PixOffset(x, y)
			r := float64(sample.Pix[offset])
			g := float64(sample.Pix[offset+1])
			b := float64(sample.Pix[offset+2])
			greenSum += g
			lumSum += (r + g + b) / 3
		}
	}
	return greenSum / (lumSum + epsilon)
}

// downsample renders the image into a fixed SampleSize×SampleSize RGBA
// buffer with nearest-neighbor sampling. Quality does not matter here; the
// fixed size just bounds the cost of the scan regardless of input resolution.
func downsample(img image.Image) *image.RGBA {
	src := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, SampleSize, SampleSize))
	for y := 0; y < SampleSize; y++ {
		srcY := src.Min.Y + y*src.Dy()/SampleSize
		for x := 0; x < SampleSize; x++ {
			srcX := src.Min.X + x*src.Dx()/SampleSize
			r, g, b, a := img.At(srcX, srcY).RGBA()
			offset := out.PixOffset(x, y)
			out.Pix[offset] = uint8(r >> 8)
			out.Pix[offset+1] = uint8(g >> 8)
			out.Pix[offset+2] = uint8(b >> 8)
			out.Pix[offset+3] = uint8(a >> 8)
		}
	}
	return out
}
