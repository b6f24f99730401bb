package main

import (
	"fmt"
	"io"

	"github.com/example/leafscan/internal/classifier"
	"github.com/example/leafscan/internal/intake"
	"github.com/example/leafscan/internal/pipeline"
)

// consolePort renders pipeline state as plain lines on the terminal. The
// analyze command runs one attempt to completion, so there is no trigger to
// disable and no spinner worth animating.
type consolePort struct {
	out io.Writer
}

func (p *consolePort) ReportStatus(message string, severity pipeline.Severity) {
	if message == "" {
		return
	}
	if severity == pipeline.SeverityError {
		fmt.Fprintf(p.out, "error: %s\n", message)
		return
	}
	fmt.Fprintf(p.out, "%s\n", message)
}

func (p *consolePort) SetSpinner(bool) {}

func (p *consolePort) ShowPreview(image *intake.ValidatedImage) {
	if image == nil {
		return
	}
	fmt.Fprintf(p.out, "selected %s: %dx%d, %d bytes\n", image.Name, image.Width, image.Height, image.Size)
}

func (p *consolePort) ShowResult(result *classifier.AnalysisResult) {
	if result == nil {
		return
	}
	fmt.Fprintf(p.out, "result: %s (%s, %s)\n", result.Class, result.ConfidencePercent(), result.Trust)
}

func (p *consolePort) ShowWarning(message string, visible bool) {
	if visible && message != "" {
		fmt.Fprintf(p.out, "warning: %s\n", message)
	}
}
