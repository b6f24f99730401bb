// Package pipeline orchestrates the analysis flow: intake validation, the
// local plausibility heuristic, the bounded classification call, and
// interpretation of the reply, emitting presentation state to a UI port.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/leafscan/internal/classifier"
	"github.com/example/leafscan/internal/heuristic"
	"github.com/example/leafscan/internal/intake"
	"github.com/example/leafscan/internal/logging"
)

// State is the controller's single live pipeline state.
type State string

const (
	StateIdle        State = "idle"
	StatePreviewed   State = "previewed"
	StateChecking    State = "checking"
	StateSending     State = "sending"
	StateResultReady State = "result_ready"
	StateError       State = "error"
)

// ErrNoImage is returned when analysis is requested without a previewed file.
var ErrNoImage = errors.New("no image selected")

const lowConfidenceMessage = "low confidence — the subject may be unrecognized or the image unclear"

// Controller runs the analysis state machine. It is reusable for the life of
// a session: results and errors are discarded at the start of each attempt,
// and re-selecting a file resets the machine. It is not safe for concurrent
// use; the UI port keeps at most one attempt in flight by disabling the
// analyze trigger while the state is Checking or Sending.
type Controller struct {
	ui     UIPort
	client classifier.Client
	logger *zap.Logger

	state   State
	image   *intake.ValidatedImage
	result  *classifier.AnalysisResult
	err     error
	timeout time.Duration
}

// NewController wires a controller to its UI port and classifier client.
func NewController(ui UIPort, client classifier.Client, logger *zap.Logger) *Controller {
	return &Controller{
		ui:      ui,
		client:  client,
		logger:  logger.Named("pipeline"),
		state:   StateIdle,
		timeout: classifier.AnalyzeTimeout,
	}
}

// SetAnalyzeTimeout overrides the per-attempt network budget. Zero or
// negative values are ignored.
func (c *Controller) SetAnalyzeTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.timeout = timeout
	}
}

// State reports the current pipeline state.
func (c *Controller) State() State { return c.state }

// Result returns the analysis result, non-nil only in StateResultReady.
func (c *Controller) Result() *classifier.AnalysisResult { return c.result }

// Err returns the failure that put the controller into StateError.
func (c *Controller) Err() error { return c.err }

// Reset returns the controller to Idle, releasing the held image and any
// result so nothing accumulates across sessions.
func (c *Controller) Reset() {
	c.state = StateIdle
	c.image = nil
	c.result = nil
	c.err = nil
	c.ui.SetSpinner(false)
	c.ui.ShowPreview(nil)
	c.ui.ShowResult(nil)
	c.ui.ShowWarning("", false)
}

// FileSelected handles a new candidate file from the UI. The previous
// selection and any prior result are discarded first. A file that clears
// intake moves the machine to Previewed; a failing one reports the
// validation error and leaves the machine Idle with nothing selected.
func (c *Controller) FileSelected(file *intake.CandidateFile) error {
	c.Reset()

	image, err := intake.Admit(file)
	if err != nil {
		c.ui.ReportStatus(err.Error(), SeverityError)
		c.logger.Info("file rejected at intake", zap.Error(err))
		return logging.NewOperationError("pipeline.file_selected", "", err)
	}

	c.image = image
	c.state = StatePreviewed
	c.ui.ShowPreview(image)
	c.ui.ReportStatus("image ready for analysis", SeverityInfo)
	return nil
}

// AnalyzeRequested runs one analyze attempt against the previewed image:
// heuristic check (warning only), bounded classification call, reply
// interpretation. Any prior result or error is cleared before the attempt.
// Every failure resolves to StateError with a reported message; the
// validated image is kept so the user can retry without re-selecting.
func (c *Controller) AnalyzeRequested(ctx context.Context) error {
	if c.image == nil {
		c.ui.ReportStatus(ErrNoImage.Error(), SeverityError)
		return ErrNoImage
	}

	attemptID := uuid.NewString()
	opLogger := logging.WithOperation(c.logger, "pipeline.analyze", attemptID)

	c.result = nil
	c.err = nil
	c.ui.ShowResult(nil)

	c.state = StateChecking
	c.ui.SetSpinner(true)
	c.ui.ReportStatus("checking image...", SeverityInfo)

	ratio := heuristic.Score(c.image.Data)
	opLogger.Debug("heuristic computed", zap.Float64("green_ratio", ratio))
	if ratio < heuristic.WarnThreshold {
		c.ui.ShowWarning(heuristic.WarnMessage, true)
		opLogger.Info("image below plausibility threshold, proceeding anyway",
			zap.Float64("green_ratio", ratio))
	} else {
		c.ui.ShowWarning("", false)
	}

	c.state = StateSending
	c.ui.ReportStatus("analyzing...", SeverityInfo)

	raw, err := c.client.Send(ctx, c.image, c.timeout)
	if err != nil {
		return c.fail(opLogger, attemptID, err)
	}

	result, err := classifier.Interpret(raw)
	if err != nil {
		return c.fail(opLogger, attemptID, err)
	}

	c.result = result
	c.state = StateResultReady
	c.ui.SetSpinner(false)
	c.ui.ShowResult(result)
	if result.Trust == classifier.LowConfidence {
		c.ui.ShowWarning(lowConfidenceMessage, true)
	}
	c.ui.ReportStatus("analysis complete", SeverityInfo)
	opLogger.Info("analysis complete",
		zap.String("class", result.Class),
		zap.Float64("confidence", result.Confidence),
		zap.String("trust", string(result.Trust)))
	return nil
}

// fail records a terminal attempt failure. The image survives for retry.
func (c *Controller) fail(logger *zap.Logger, attemptID string, err error) error {
	c.err = err
	c.state = StateError
	c.ui.SetSpinner(false)
	c.ui.ReportStatus(userMessage(err), SeverityError)
	logger.Error("analysis attempt failed", zap.Error(err))
	return logging.NewOperationError("pipeline.analyze", attemptID, err)
}

// userMessage translates attempt failures into presentable text.
func userMessage(err error) string {
	var serverErr *classifier.ServerError
	switch {
	case errors.Is(err, classifier.ErrTimeout):
		return "the analysis timed out — please try again"
	case errors.As(err, &serverErr):
		return serverErr.Error()
	case errors.Is(err, classifier.ErrMalformed):
		return "the analysis service returned an unexpected reply"
	case errors.Is(err, classifier.ErrNetwork):
		return "could not reach the analysis service"
	default:
		return err.Error()
	}
}
