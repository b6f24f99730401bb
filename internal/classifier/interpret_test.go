package classifier

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInterpretConfidentReply(t *testing.T) {
	result, err := Interpret([]byte(`{"class":"Healthy","confidence":0.92}`))
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}

	want := &AnalysisResult{Class: "Healthy", Confidence: 0.92, Trust: Confident}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if got := result.ConfidencePercent(); got != "92.0%" {
		t.Fatalf("expected 92.0%%, got %s", got)
	}
}

func TestInterpretThresholdBoundary(t *testing.T) {
	cases := []struct {
		confidence string
		want       Trust
	}{
		{"0.70", Confident},
		{"0.699999", LowConfidence},
		{"1.0", Confident},
		{"0", LowConfidence},
	}
	for _, tc := range cases {
		result, err := Interpret([]byte(`{"class":"Rust","confidence":` + tc.confidence + `}`))
		if err != nil {
			t.Fatalf("confidence %s: interpret failed: %v", tc.confidence, err)
		}
		if result.Trust != tc.want {
			t.Fatalf("confidence %s: expected %s, got %s", tc.confidence, tc.want, result.Trust)
		}
	}
}

func TestInterpretRejectsDeviantReplies(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `<html>gateway error</html>`},
		{"missing class", `{"confidence":0.9}`},
		{"empty class", `{"class":"  ","confidence":0.9}`},
		{"missing confidence", `{"class":"Healthy"}`},
		{"confidence above range", `{"class":"Healthy","confidence":1.5}`},
		{"confidence below range", `{"class":"Healthy","confidence":-0.1}`},
		{"confidence wrong type", `{"class":"Healthy","confidence":"high"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Interpret([]byte(tc.raw))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if result != nil {
				t.Fatalf("expected nil result, got %+v", result)
			}
		})
	}
}
