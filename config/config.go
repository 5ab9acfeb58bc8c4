// Package config loads the settings of the tdash tool.
//
// Settings come from a YAML file, the credentials come from the environment
// (possibly through a .env file) or are prompted for.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Environment variables.
const (
	EnvKey      = "T212_API_KEY"
	EnvSecret   = "T212_API_SECRET"
	EnvBaseURL  = "T212_BASE_URL"
	EnvTimezone = "T212_TIMEZONE"
)

// Config holds the tdash settings.
type Config struct {
	BaseURL       string        `yaml:"base_url" validate:"required,url"`
	Timezone      string        `yaml:"timezone" validate:"required,timezone"`
	Currency      string        `yaml:"currency" validate:"required,iso4217"`
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	RatePerMinute int           `yaml:"rate_per_minute" validate:"gte=0"`
	HTTPCache     bool          `yaml:"http_cache"`
	CacheDir      string        `yaml:"cache_dir"`
	OrdersFile    string        `yaml:"orders_file"`

	// Credentials are never read from the file.
	Key    string `yaml:"-"`
	Secret string `yaml:"-"`
}

// Default returns the default settings.
func Default() Config {
	return Config{
		BaseURL:       "https://live.trading212.com",
		Timezone:      "UTC",
		Currency:      "USD",
		Timeout:       10 * time.Second,
		RatePerMinute: 6,
		OrdersFile:    "orders.jsonl",
	}
}

// Load reads the settings from the YAML file at path, over the defaults. A
// missing file is not an error, the defaults are returned.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("no config file %q, using defaults", path)
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("cannot read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return c, nil
}

// LoadEnv loads the environment files (".env" if none is given), without
// overriding variables already set, then reads the credentials and the
// overrides from the environment. Missing files are ignored.
func (c *Config) LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err := godotenv.Load(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s file: %w", file, err)
		}
		log.Debugf("loaded environment from %s", file)
	}

	if v := os.Getenv(EnvKey); v != "" {
		c.Key = v
	}
	if v := os.Getenv(EnvSecret); v != "" {
		c.Secret = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
	return nil
}

// HasCredentials reports whether both the key and the secret are known.
func (c Config) HasCredentials() bool { return c.Key != "" && c.Secret != "" }

// Prompt asks for the missing credentials on w, reading the answers from r.
// The secret is not echoed when r is a terminal.
func (c *Config) Prompt(r io.Reader, w io.Writer) error {
	in := bufio.NewReader(r)
	if c.Key == "" {
		fmt.Fprint(w, "Trading 212 API key: ")
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return fmt.Errorf("cannot read API key: %w", err)
		}
		c.Key = strings.TrimSpace(line)
	}
	if c.Secret == "" {
		fmt.Fprint(w, "Trading 212 API secret: ")
		secret, err := readSecret(r, in)
		fmt.Fprintln(w)
		if err != nil {
			return fmt.Errorf("cannot read API secret: %w", err)
		}
		c.Secret = secret
	}
	if !c.HasCredentials() {
		return errors.New("API key and secret are required")
	}
	return nil
}

func readSecret(r io.Reader, in *bufio.Reader) (string, error) {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		return strings.TrimSpace(string(b)), err
	}
	line, err := in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Location returns the time zone used to compute calendar days.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings, every invalid field is reported.
func (c Config) Validate() error {
	err := validate.Struct(c)
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}
	errs := make([]error, 0, len(invalid))
	for _, fe := range invalid {
		errs = append(errs, fmt.Errorf("invalid %s %q: failed on %q", fe.Field(), fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
}
