package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pltanton/dadjoke-mcp/internal/config"
	"github.com/pltanton/dadjoke-mcp/internal/jokes"
	"github.com/pltanton/dadjoke-mcp/internal/logger"
	mcpserver "github.com/pltanton/dadjoke-mcp/internal/mcp"
)

var (
	serveTransport string
	serveHost      string
	servePort      int
	serveConfig    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dad joke MCP server",
	Long: `Run the MCP server on the configured transport.

Configuration is read from .dadjoke-mcp.yaml next to the executable (or
--config), overlaid with DADJOKE_* environment variables, then with flags.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTransport, "transport", "",
		"Transport: stdio or sse (default from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "",
		"SSE listen host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0,
		"SSE listen port (default from config)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "",
		"Path to config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := setupLogging(cmd, cfg); err != nil {
		return err
	}

	catalog := jokes.NewCatalog()
	logger.Info("[Serve] Starting %s version=%s transport=%s addr=%s log_level=%s log_format=%s styles=%s",
		mcpserver.ServerName, mcpserver.ServerVersion, cfg.Transport, cfg.Addr(),
		cfg.Logging.Level, cfg.Logging.Format, strings.Join(catalog.Styles(), ", "))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcpserver.New(cfg, catalog)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("[Serve] Server error: %v", err)
		return err
	}

	logger.Info("[Serve] Server shutdown complete")
	return nil
}

func loadServeConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if serveConfig != "" {
		cfg, err = config.LoadFromPath(serveConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if serveTransport != "" {
		cfg.Transport = serveTransport
	}
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	return cfg, nil
}

// setupLogging applies the logging config. An explicit --log flag wins over
// the config file level. The flag is reached through cmd.Root() rather than
// the rootCmd package var so that rootCmd's initializer does not depend on
// itself through runServe.
func setupLogging(cmd *cobra.Command, cfg *config.Config) error {
	if !cmd.Root().PersistentFlags().Changed("log") {
		level, err := logger.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}
	if err := logger.SetFormat(cfg.Logging.Format); err != nil {
		return err
	}
	if cfg.Logging.ToFile && cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			return err
		}
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		logger.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return nil
}
