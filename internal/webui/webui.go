// Package webui adapts the browser to the pipeline's UI port: it serves the
// upload page and translates one multipart POST into one analyze attempt,
// returning the recorded presentation state as JSON. Button enable/disable
// policy lives in the page script, per the port contract.
package webui

import (
	_ "embed"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/leafscan/internal/classifier"
	"github.com/example/leafscan/internal/intake"
	"github.com/example/leafscan/internal/pipeline"
)

// MaxUploadSize caps multipart memory; slack on top of the intake limit so
// the pipeline, not the HTTP layer, reports the too-large error.
const MaxUploadSize = intake.MaxFileSize + 1024*1024

//go:embed index.html
var indexPage []byte

// previewView is the preview metadata exposed to the page.
type previewView struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	MIME   string `json:"mime"`
	Size   int64  `json:"size"`
}

// resultView is the analysis result exposed to the page.
type resultView struct {
	Class         string           `json:"class"`
	Confidence    float64          `json:"confidence"`
	ConfidencePct string           `json:"confidence_pct"`
	Trust         classifier.Trust `json:"trust"`
}

// attemptView is the full recorded UI state for one attempt.
type attemptView struct {
	State    pipeline.State    `json:"state"`
	Status   string            `json:"status"`
	Severity pipeline.Severity `json:"severity"`
	Warning  string            `json:"warning,omitempty"`
	Preview  *previewView      `json:"preview,omitempty"`
	Result   *resultView       `json:"result,omitempty"`
}

// recorderPort captures controller emissions for a single attempt so they
// can be returned to the page in one response.
type recorderPort struct {
	status   string
	severity pipeline.Severity
	preview  *intake.ValidatedImage
	result   *classifier.AnalysisResult
	warning  string
}

func (p *recorderPort) ReportStatus(message string, severity pipeline.Severity) {
	p.status = message
	p.severity = severity
}

func (p *recorderPort) SetSpinner(bool) {}

func (p *recorderPort) ShowPreview(image *intake.ValidatedImage) { p.preview = image }

func (p *recorderPort) ShowResult(result *classifier.AnalysisResult) { p.result = result }

func (p *recorderPort) ShowWarning(message string, visible bool) {
	if !visible {
		message = ""
	}
	p.warning = message
}

func (p *recorderPort) view(state pipeline.State) attemptView {
	view := attemptView{
		State:    state,
		Status:   p.status,
		Severity: p.severity,
		Warning:  p.warning,
	}
	if p.preview != nil {
		view.Preview = &previewView{
			Width:  p.preview.Width,
			Height: p.preview.Height,
			MIME:   p.preview.MIME,
			Size:   p.preview.Size,
		}
	}
	if p.result != nil {
		view.Result = &resultView{
			Class:         p.result.Class,
			Confidence:    p.result.Confidence,
			ConfidencePct: p.result.ConfidencePercent(),
			Trust:         p.result.Trust,
		}
	}
	return view
}

// Register wires the browser UI port onto the Gin router. A non-positive
// timeout keeps the default analyze budget.
func Register(router *gin.Engine, client classifier.Client, timeout time.Duration, logger *zap.Logger) {
	router.MaxMultipartMemory = MaxUploadSize

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/analyze", func(c *gin.Context) {
		file, err := readUpload(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		port := &recorderPort{}
		controller := pipeline.NewController(port, client, logger)
		controller.SetAnalyzeTimeout(timeout)

		if err := controller.FileSelected(file); err != nil {
			c.JSON(intakeStatus(err), port.view(controller.State()))
			return
		}
		if err := controller.AnalyzeRequested(c.Request.Context()); err != nil {
			c.JSON(attemptStatus(err), port.view(controller.State()))
			return
		}

		c.JSON(http.StatusOK, port.view(controller.State()))
	})
}

// readUpload pulls the "file" part out of the multipart form. A missing
// part is not an error upstream of the pipeline: intake owns that verdict.
func readUpload(c *gin.Context) (*intake.CandidateFile, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return &intake.CandidateFile{}, nil
	}

	src, err := header.Open()
	if err != nil {
		return nil, errors.New("unable to open upload")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}

	return &intake.CandidateFile{
		Name: header.Filename,
		MIME: header.Header.Get("Content-Type"),
		Size: header.Size,
		Data: data,
	}, nil
}

// intakeStatus maps intake rejections onto HTTP statuses.
func intakeStatus(err error) int {
	switch {
	case errors.Is(err, intake.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, intake.ErrInvalidType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

// attemptStatus maps attempt failures onto HTTP statuses.
func attemptStatus(err error) int {
	var serverErr *classifier.ServerError
	switch {
	case errors.Is(err, classifier.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &serverErr), errors.Is(err, classifier.ErrNetwork), errors.Is(err, classifier.ErrMalformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
