package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsubmissions/pkg/client"
	"github.com/goliatone/go-formsubmissions/pkg/config"
	"github.com/goliatone/go-formsubmissions/pkg/prompt"
)

const version = "0.1.0"

// rootFlags holds the persistent flag values. Only flags the user set
// override the loaded configuration.
type rootFlags struct {
	configPath string
	envFile    string
	baseURL    string
	username   string
	password   string
	timeout    string
	logLevel   string
}

type app struct {
	stdout io.Writer
	stderr io.Writer

	flags rootFlags

	lookupEnv   func(string) (string, bool)
	interactive func() bool
	driver      prompt.Driver
	httpOptions []client.Option

	log *slog.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:      stdout,
		stderr:      stderr,
		lookupEnv:   os.LookupEnv,
		interactive: stdinIsTerminal,
		driver:      prompt.NewSurveyDriver(),
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// logger returns the configured logger, falling back to a WARN-level text
// logger on stderr before flags are parsed.
func (a *app) logger() *slog.Logger {
	if a.log == nil {
		a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return a.log
}

func (a *app) setupLogger() error {
	level := slog.LevelWarn
	if raw := strings.TrimSpace(a.flags.logLevel); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", raw, err)
		}
	}
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// loadConfig merges file, dotenv and environment settings with any flags the
// user set, prompting for a missing password on a terminal.
func (a *app) loadConfig(ctx context.Context, cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		Path:    a.flags.configPath,
		EnvFile: a.flags.envFile,
		Lookup:  a.lookupEnv,
	})
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = a.flags.baseURL
	}
	if flags.Changed("username") {
		cfg.Username = a.flags.username
	}
	if flags.Changed("password") {
		cfg.Password = a.flags.password
	}
	if flags.Changed("timeout") {
		d, err := parseDuration(a.flags.timeout)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Timeout = d
	}

	if cfg.Password == "" && cfg.Username != "" && a.interactive() {
		password, err := prompt.AskPassword(ctx, a.driver, cfg.Username)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Password = password
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	a.logger().Debug("configuration loaded",
		slog.String("base_url", cfg.BaseURL),
		slog.String("username", cfg.Username),
		slog.Duration("timeout", cfg.Timeout),
		slog.Int("concurrency", cfg.Concurrency),
	)
	return cfg, nil
}

func (a *app) newClient(cfg config.Config) (*client.Client, error) {
	options := []client.Option{
		client.WithRequestTimeout(cfg.Timeout),
		client.WithUserAgent("formsubmissions/" + version),
	}
	options = append(options, a.httpOptions...)
	return client.New(cfg.BaseURL, cfg.Username, cfg.Password, options...)
}
