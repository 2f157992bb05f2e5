package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/youruser/creativestudio/internal/bgremove"
	"github.com/youruser/creativestudio/internal/brand"
	"github.com/youruser/creativestudio/internal/compliance"
	"github.com/youruser/creativestudio/internal/config"
	"github.com/youruser/creativestudio/internal/creative"
	"github.com/youruser/creativestudio/internal/export"
	"github.com/youruser/creativestudio/internal/pipeline"
)

// loadConfig reads the environment and applies any persistent flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("assets") {
		cfg.AssetsDir = flagAssets
	}
	if flags.Changed("font") {
		cfg.FontPath = flagFont
	}
	if flags.Changed("rules") {
		cfg.ComplianceRules = flagRules
	}
	if flags.Changed("remover") {
		cfg.Remover = flagRemover
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	return cfg, cfg.Validate()
}

func newChecker(cfg config.Config) (*compliance.Checker, error) {
	if cfg.ComplianceRules == "" {
		return compliance.NewChecker(nil), nil
	}
	rules, err := compliance.LoadRulesCSV(cfg.ComplianceRules)
	if err != nil {
		return nil, fmt.Errorf("load compliance rules: %w", err)
	}
	return compliance.NewChecker(rules), nil
}

// newSink prefers MinIO when configured, else the export directory.
func newSink(ctx context.Context, cfg config.Config, log zerolog.Logger) (export.Sink, error) {
	if cfg.MinIO.Enabled() {
		store, err := export.NewMinIOStore(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		log.Info().Str("endpoint", cfg.MinIO.Endpoint).Str("bucket", cfg.MinIO.Bucket).Msg("exporting to minio")
		return store, nil
	}
	store, err := export.NewFileStore(cfg.ExportDir)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", store.BasePath()).Msg("exporting to filesystem")
	return store, nil
}

func buildPipeline(ctx context.Context, cfg config.Config, log zerolog.Logger) (*pipeline.Pipeline, error) {
	checker, err := newChecker(cfg)
	if err != nil {
		return nil, err
	}
	remover, err := bgremove.New(cfg.RemoverOptions())
	if err != nil {
		return nil, err
	}
	sink, err := newSink(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	assets := brand.Load(cfg.AssetsDir, cfg.FontPath, log)
	composer := creative.NewComposer(assets, log)
	p := pipeline.New(remover, composer, checker, sink, cfg.Workers, log)
	p.SetDownloadLimit(cfg.MaxUploadMB << 20)
	return p, nil
}
