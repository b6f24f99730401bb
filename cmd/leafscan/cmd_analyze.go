package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/leafscan/internal/classifier"
	"github.com/example/leafscan/internal/config"
	"github.com/example/leafscan/internal/intake"
	"github.com/example/leafscan/internal/pipeline"
)

var analyzeFlags struct {
	configPath string
	endpoint   string
	timeoutMs  int
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image-path>",
	Short: "Submit a photo to the classifier and print the verdict",
	Long: `Analyze runs the full pipeline on one image file: upload validation,
resolution probe, the local green-ratio plausibility check, then a single
bounded POST to the classification endpoint.

The endpoint URL comes from the config file or --endpoint. A low
plausibility score prints a warning but never blocks the call.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.configPath, "config", "leafscan.yaml", "Path to config file")
	f.StringVar(&analyzeFlags.endpoint, "endpoint", "", "Classification endpoint URL (overrides config)")
	f.IntVar(&analyzeFlags.timeoutMs, "timeout-ms", 0, "Analyze call budget in milliseconds (overrides config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(analyzeFlags.configPath, analyzeFlags.endpoint, analyzeFlags.timeoutMs)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	file := &intake.CandidateFile{
		Name: filepath.Base(path),
		MIME: http.DetectContentType(data),
		Size: int64(len(data)),
		Data: data,
	}

	port := &consolePort{out: cmd.OutOrStdout()}
	client := classifier.NewHTTPClient(cfg.Classifier.Endpoint, logger)
	controller := pipeline.NewController(port, client, logger)
	controller.SetAnalyzeTimeout(cfg.Classifier.Timeout())

	if err := controller.FileSelected(file); err != nil {
		return err
	}
	return controller.AnalyzeRequested(cmd.Context())
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(path, endpoint string, timeoutMs int) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if endpoint != "" {
		cfg.Classifier.Endpoint = endpoint
	}
	if timeoutMs > 0 {
		cfg.Classifier.TimeoutMs = timeoutMs
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
