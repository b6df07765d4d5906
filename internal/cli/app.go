package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/comparedemo/internal/backend"
	"github.com/wesleyorama2/comparedemo/internal/config"
	dhttp "github.com/wesleyorama2/comparedemo/internal/http"
	"github.com/wesleyorama2/comparedemo/internal/output"
)

// app holds what every command needs: configuration, logger and the
// shared HTTP client.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *dhttp.Client
	noColor bool
	closers []io.Closer
}

// newApp loads configuration and sets up logging from the global flags.
// Commands that own the terminal pass quiet so logs never reach stderr.
func newApp(cmd *cobra.Command, quiet bool) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	noColor, _ := cmd.Flags().GetBool("no-color")
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	logFile, _ := cmd.Flags().GetString("log-file")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	var logOut io.Writer = cmd.ErrOrStderr()
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		a.closers = append(a.closers, f)
		logOut = f
	case quiet:
		logOut = io.Discard
	}

	a.logger, err = newLogger(logOut, level, format)
	if err != nil {
		a.Close()
		return nil, err
	}
	slog.SetDefault(a.logger)

	a.noColor = !output.UseColor(cmd.OutOrStdout(), noColor)
	a.client = dhttp.NewClient(
		dhttp.WithBaseURL(cfg.BaseURL),
		dhttp.WithTimeout(cfg.Timeout()),
	)
	return a, nil
}

// Close releases the log file, if any.
func (a *app) Close() {
	for _, c := range a.closers {
		c.Close()
	}
}

// service returns the backend for arch. The empty string selects the
// configured load architecture.
func (a *app) service(arch string) (*backend.Service, error) {
	if arch == "" {
		arch = a.cfg.Load.Architecture
	}
	target, err := backend.ArchitectureFromConfig(a.cfg, arch)
	if err != nil {
		return nil, err
	}
	return backend.NewService(a.client, target), nil
}

func (a *app) formatter(format string) (*output.Formatter, error) {
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(f, a.noColor), nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}
}
