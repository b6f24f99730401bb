package classifier

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ConfidenceThreshold is the minimum confidence presented as trustworthy.
// The bound is inclusive: exactly 0.70 counts as Confident.
const ConfidenceThreshold = 0.70

// Trust tags how a result should be presented.
type Trust string

const (
	// Confident results are shown as trustworthy.
	Confident Trust = "confident"
	// LowConfidence results carry a warning that the subject may be
	// unrecognized or the image unclear.
	LowConfidence Trust = "low_confidence"
)

// AnalysisResult is a successfully interpreted classifier reply.
type AnalysisResult struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	Trust      Trust   `json:"trust"`
}

// ConfidencePercent renders the confidence for display, e.g. "92.0%".
func (r *AnalysisResult) ConfidencePercent() string {
	return fmt.Sprintf("%.1f%%", r.Confidence*100)
}

// Interpret validates a raw classifier reply. It requires a structured body
// with a non-empty class string and a numeric confidence in [0,1]; any
// deviation is reported as ErrMalformed rather than surfacing a decode fault.
func Interpret(raw []byte) (*AnalysisResult, error) {
	var reply struct {
		Class      *string  `json:"class"`
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformed)
	}
	if reply.Class == nil || strings.TrimSpace(*reply.Class) == "" {
		return nil, fmt.Errorf("%w: missing class", ErrMalformed)
	}
	if reply.Confidence == nil {
		return nil, fmt.Errorf("%w: missing confidence", ErrMalformed)
	}
	confidence := *reply.Confidence
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v out of range", ErrMalformed, confidence)
	}

	result := &AnalysisResult{Class: *reply.Class, Confidence: confidence, Trust: LowConfidence}
	if confidence >= ConfidenceThreshold {
		result.Trust = Confident
	}
	return result, nil
}
