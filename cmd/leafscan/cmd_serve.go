package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/leafscan/internal/classifier"
	"github.com/example/leafscan/internal/logging"
	"github.com/example/leafscan/internal/webui"
)

var serveFlags struct {
	configPath string
	addr       string
	endpoint   string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the browser upload page locally",
	Long: `Serve hosts the upload page and the /analyze endpoint that drives the
pipeline on behalf of the browser. The page itself owns preview rendering
and keeps the analyze button disabled while an attempt is in flight.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.configPath, "config", "leafscan.yaml", "Path to config file")
	f.StringVar(&serveFlags.addr, "addr", "", "HTTP listen address (overrides config)")
	f.StringVar(&serveFlags.endpoint, "endpoint", "", "Classification endpoint URL (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveFlags.configPath, serveFlags.endpoint, 0)
	if err != nil {
		return err
	}
	if serveFlags.addr != "" {
		cfg.Server.Addr = serveFlags.addr
	}

	logger, err := logging.NewLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	client := classifier.NewHTTPClient(cfg.Classifier.Endpoint, logger)

	router := gin.Default()
	webui.Register(router, client, cfg.Classifier.Timeout(), logger)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	logger.Info("leafscan listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("endpoint", cfg.Classifier.Endpoint))
	return webui.Serve(server, 15*time.Second, logger)
}
