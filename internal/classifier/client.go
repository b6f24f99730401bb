// Package classifier talks to the remote classification endpoint: one
// bounded multipart POST per attempt, and interpretation of the structured
// reply into a trust-tagged result.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/leafscan/internal/intake"
	"github.com/example/leafscan/internal/logging"
)

const (
	// DefaultTimeout bounds classifier calls when the caller does not pick
	// its own budget.
	DefaultTimeout = 15 * time.Second
	// AnalyzeTimeout is the budget for the analyze call specifically.
	AnalyzeTimeout = 20 * time.Second

	// fileField is the multipart field name the endpoint expects.
	fileField = "file"

	// maxErrorBody caps how much of a failure body is read for the message.
	maxErrorBody = 64 * 1024
)

// Client exposes the subset of classifier functionality the pipeline uses.
type Client interface {
	Send(ctx context.Context, image *intake.ValidatedImage, timeout time.Duration) ([]byte, error)
}

// HTTPClient posts images to a fixed classification endpoint over HTTP.
type HTTPClient struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// NewHTTPClient builds a classifier client for the given endpoint URL.
func NewHTTPClient(endpoint string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		http:     &http.Client{},
		logger:   logger.Named("classifier"),
	}
}

// Send performs exactly one multipart POST carrying the image under the
// "file" field, bounded by timeout. The deadline context aborts the in-flight
// transfer, not just the wait, so an attempt has exactly one outcome:
// the raw 2xx body, Timeout, NetworkFailure, or ServerError. No retries.
func (c *HTTPClient) Send(ctx context.Context, image *intake.ValidatedImage, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, contentType, err := buildMultipartBody(image)
	if err != nil {
		return nil, logging.NewOperationError("classifier.build_body", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, logging.NewOperationError("classifier.build_request", "", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			c.logger.Warn("classification call timed out", zap.Duration("timeout", timeout))
			return nil, ErrTimeout
		}
		c.logger.Error("classification call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := extractErrorMessage(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("classifier rejected request",
			zap.Int("status", resp.StatusCode), zap.String("message", message))
		return nil, &ServerError{Status: resp.StatusCode, Message: message}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return raw, nil
}

// buildMultipartBody assembles the single-part form the endpoint expects.
func buildMultipartBody(image *intake.ValidatedImage) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	name := image.Name
	if name == "" {
		name = "upload"
	}
	header.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+name+`"`)
	if image.MIME != "" {
		header.Set("Content-Type", image.MIME)
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// extractErrorMessage pulls a human-readable message out of a failure body:
// a structured {"detail": "..."} field when present, raw text otherwise.
func extractErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(body)
	if err != nil {
		return ""
	}
	var structured struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil && structured.Detail != "" {
		return structured.Detail
	}
	return strings.TrimSpace(string(raw))
}
