package pipeline

import (
	"github.com/example/leafscan/internal/classifier"
	"github.com/example/leafscan/internal/intake"
)

// Severity qualifies a status message.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// UIPort is the presentation surface the controller drives. Implementations
// own all layout and styling decisions, plus the enable/disable policy for
// the analyze trigger: it must stay disabled until a file is previewed and
// while an attempt is in flight.
type UIPort interface {
	// ReportStatus shows a status message with the given severity.
	ReportStatus(message string, severity Severity)
	// SetSpinner toggles the in-flight indicator.
	SetSpinner(visible bool)
	// ShowPreview presents the validated image; nil clears the preview.
	ShowPreview(image *intake.ValidatedImage)
	// ShowResult presents an analysis result; nil clears it.
	ShowResult(result *classifier.AnalysisResult)
	// ShowWarning toggles the non-blocking warning line.
	ShowWarning(message string, visible bool)
}
