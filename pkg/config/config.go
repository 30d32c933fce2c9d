package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied before any source is read.
const (
	DefaultOutput      = "text"
	DefaultConcurrency = 4
	DefaultTimeout     = 30 * time.Second
	DefaultEnvFile     = ".env"
)

// Config holds every setting the harvester and CLI need.
type Config struct {
	BaseURL     string        `yaml:"base_url"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	FormID      string        `yaml:"form_id"`
	Output      string        `yaml:"output"`
	Template    string        `yaml:"template"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	Sanitize    bool          `yaml:"sanitize"`
}

// Default returns the configuration used when no source overrides a key.
func Default() Config {
	return Config{
		Output:      DefaultOutput,
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		Sanitize:    true,
	}
}

// LoadOptions selects the sources consulted by Load.
type LoadOptions struct {
	// Path points to an optional YAML config file. A missing file is an error
	// only when the path was given explicitly.
	Path string
	// EnvFile points to a dotenv file; DefaultEnvFile is used when empty and
	// silently skipped when absent.
	EnvFile string
	// Lookup resolves environment variables; os.LookupEnv when nil.
	Lookup func(string) (string, bool)
}

// Error describes an invalid or missing configuration value.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config: " + e.Field + ": " + e.Message
}

// envKeys lists the variables consulted for each setting, first match wins.
var envKeys = map[string][]string{
	"base_url":    {"FORMBUILDER_URL", "123_FORM_BUILDER_URL"},
	"username":    {"FORMBUILDER_USERNAME", "123_FORM_BUILDER_USERNAME"},
	"password":    {"FORMBUILDER_PASSWORD", "123_FORM_BUILDER_PASSWORD"},
	"form_id":     {"FORMBUILDER_FORM_ID"},
	"output":      {"FORMBUILDER_OUTPUT"},
	"template":    {"FORMBUILDER_TEMPLATE"},
	"concurrency": {"FORMBUILDER_CONCURRENCY"},
	"timeout":     {"FORMBUILDER_TIMEOUT"},
	"sanitize":    {"FORMBUILDER_SANITIZE"},
}

// Load merges defaults, the YAML file, the dotenv file and the environment,
// later sources overriding earlier ones. Real environment variables win over
// dotenv entries.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(opts.Path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	dotenv, err := readEnvFile(opts.EnvFile)
	if err != nil {
		return Config{}, err
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	resolve := func(key string) (string, bool) {
		for _, name := range envKeys[key] {
			if value, ok := lookup(name); ok && value != "" {
				return value, true
			}
		}
		for _, name := range envKeys[key] {
			if value, ok := dotenv[name]; ok && value != "" {
				return value, true
			}
		}
		return "", false
	}

	if err := applyEnv(&cfg, resolve); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultEnvFile
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read env file %s: %w", path, err)
	}
	return values, nil
}

func applyEnv(cfg *Config, resolve func(string) (string, bool)) error {
	strs := map[string]*string{
		"base_url": &cfg.BaseURL,
		"username": &cfg.Username,
		"password": &cfg.Password,
		"form_id":  &cfg.FormID,
		"output":   &cfg.Output,
		"template": &cfg.Template,
	}
	for key, dest := range strs {
		if value, ok := resolve(key); ok {
			*dest = value
		}
	}

	if value, ok := resolve("concurrency"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return &Error{Field: "concurrency", Message: fmt.Sprintf("invalid integer %q", value)}
		}
		cfg.Concurrency = n
	}
	if value, ok := resolve("timeout"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return &Error{Field: "timeout", Message: fmt.Sprintf("invalid duration %q", value)}
		}
		cfg.Timeout = d
	}
	if value, ok := resolve("sanitize"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return &Error{Field: "sanitize", Message: fmt.Sprintf("invalid boolean %q", value)}
		}
		cfg.Sanitize = b
	}
	return nil
}

// Validate reports the first missing or invalid value.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.BaseURL) == "":
		return &Error{Field: "base_url", Message: "required (FORMBUILDER_URL)"}
	case strings.TrimSpace(c.Username) == "":
		return &Error{Field: "username", Message: "required (FORMBUILDER_USERNAME)"}
	case c.Password == "":
		return &Error{Field: "password", Message: "required (FORMBUILDER_PASSWORD)"}
	case c.Concurrency < 0:
		return &Error{Field: "concurrency", Message: "must not be negative"}
	case c.Timeout < 0:
		return &Error{Field: "timeout", Message: "must not be negative"}
	case strings.TrimSpace(c.Output) == "":
		return &Error{Field: "output", Message: "required"}
	}
	return nil
}
