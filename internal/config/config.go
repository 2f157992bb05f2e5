// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/youruser/creativestudio/internal/bgremove"
	"github.com/youruser/creativestudio/internal/export"
)

type Config struct {
	Env  string
	Port string

	AssetsDir       string
	FontPath        string
	ComplianceRules string

	Remover        string
	RemoverURL     string
	RemoverTimeout time.Duration
	RemoverRetries int
	KeyTolerance   int

	Workers     int
	MaxUploadMB int
	ExportDir   string
	MinIO       export.MinIOConfig

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads .env files (when present) and then the process environment.
func Load() (Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load(".env", ".env.local")

	p := &parser{}
	c := Config{
		Env:             getenv("APP_ENV", "development"),
		Port:            getenv("PORT", "8080"),
		AssetsDir:       getenv("ASSETS_DIR", "assets"),
		FontPath:        getenv("FONT_PATH", ""),
		ComplianceRules: getenv("COMPLIANCE_RULES", ""),
		Remover:         getenv("REMOVER", bgremove.KindKey),
		RemoverURL:      getenv("REMOVER_URL", "http://localhost:7000"),
		RemoverTimeout:  p.duration("REMOVER_TIMEOUT", 60*time.Second),
		RemoverRetries:  p.int("REMOVER_RETRIES", 2),
		KeyTolerance:    p.int("KEY_TOLERANCE", bgremove.DefaultTolerance),
		Workers:         p.int("WORKERS", 4),
		MaxUploadMB:     p.int("MAX_UPLOAD_MB", 32),
		ExportDir:       getenv("EXPORT_DIR", "exports"),
		MinIO: export.MinIOConfig{
			Endpoint:  getenv("MINIO_ENDPOINT", ""),
			AccessKey: getenv("MINIO_ACCESS_KEY", ""),
			SecretKey: getenv("MINIO_SECRET_KEY", ""),
			Bucket:    getenv("MINIO_BUCKET", ""),
			UseSSL:    p.bool("MINIO_USE_SSL", false),
		},
		RateLimitRPS:   p.float("RATE_LIMIT_RPS", 5),
		RateLimitBurst: p.int("RATE_LIMIT_BURST", 10),
	}
	if err := errors.Join(p.errs...); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks value ranges and cross-field requirements.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Remover) {
	case bgremove.KindHTTP:
		if c.RemoverURL == "" {
			errs = append(errs, errors.New("config: REMOVER_URL is required when REMOVER=http"))
		}
	case bgremove.KindKey, bgremove.KindNone:
	default:
		errs = append(errs, fmt.Errorf("config: REMOVER must be http, key or none, got %q", c.Remover))
	}
	if c.Workers < 1 {
		errs = append(errs, errors.New("config: WORKERS must be at least 1"))
	}
	if c.RemoverRetries < 0 {
		errs = append(errs, errors.New("config: REMOVER_RETRIES must be non-negative"))
	}
	if c.MaxUploadMB < 1 {
		errs = append(errs, errors.New("config: MAX_UPLOAD_MB must be at least 1"))
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, errors.New("config: rate limits must be non-negative"))
	}
	if c.MinIO.Endpoint != "" && c.MinIO.Bucket == "" {
		errs = append(errs, errors.New("config: MINIO_BUCKET is required with MINIO_ENDPOINT"))
	}
	return errors.Join(errs...)
}

// RemoverOptions maps the remover settings onto bgremove.Options.
func (c Config) RemoverOptions() bgremove.Options {
	return bgremove.Options{
		Kind:      c.Remover,
		URL:       c.RemoverURL,
		Timeout:   c.RemoverTimeout,
		Retries:   c.RemoverRetries,
		Tolerance: c.KeyTolerance,
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// parser collects conversion errors so every bad variable is reported at once.
type parser struct {
	errs []error
}

func (p *parser) int(k string, def int) int {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("config: %s: %w", k, err))
		return def
	}
	return n
}

func (p *parser) float(k string, def float64) float64 {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("config: %s: %w", k, err))
		return def
	}
	return f
}

func (p *parser) bool(k string, def bool) bool {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("config: %s: %w", k, err))
		return def
	}
	return b
}

func (p *parser) duration(k string, def time.Duration) time.Duration {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("config: %s: %w", k, err))
		return def
	}
	return d
}
