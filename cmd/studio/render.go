package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/youruser/creativestudio/internal/api"
	"github.com/youruser/creativestudio/internal/creative"
	"github.com/youruser/creativestudio/internal/logging"
	"github.com/youruser/creativestudio/internal/observability"
	"github.com/youruser/creativestudio/internal/pipeline"
	"github.com/youruser/creativestudio/internal/placement"
)

var (
	renderPlatform   string
	renderCurrency   string
	renderPrice      string
	renderBackground string
	renderSlogan     string
	renderQR         string
	renderOut        string
	renderBatch      string
	renderArchive    string
)

var renderCmd = &cobra.Command{
	Use:   "render IMAGE...",
	Short: "Render creatives for product photos",
	Long: `Render one creative per product photo (file path or http(s) URL) and export
the ones whose slogan passes compliance. Outputs are named tesco_NNN_<stem>.jpg
in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderPlatform, "platform", "p", placement.SquarePost, "Placement: "+strings.Join(placement.Names(), ", "))
	f.StringVar(&renderCurrency, "currency", "£", "Currency symbol: "+strings.Join(api.Currencies, " "))
	f.StringVar(&renderPrice, "price", "1.50", "Clubcard price")
	f.StringVar(&renderBackground, "background", "", "Background hint (white, summer, kitchen)")
	f.StringVarP(&renderSlogan, "slogan", "s", "", "Slogan text")
	f.StringVar(&renderQR, "qr", "", "Optional QR badge content")
	f.StringVarP(&renderOut, "out", "o", "", "Export directory (overrides EXPORT_DIR and MinIO)")
	f.StringVar(&renderBatch, "batch", "", "Batch id used as the export prefix (default: random)")
	f.StringVar(&renderArchive, "archive", "", "Also write a zip of exportable creatives to this path")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	preset, ok := placement.Lookup(renderPlatform)
	if !ok {
		return fmt.Errorf("unknown platform %q (want one of %s)", renderPlatform, strings.Join(placement.Names(), ", "))
	}
	if !slices.Contains(api.Currencies, renderCurrency) {
		return fmt.Errorf("unsupported currency %q", renderCurrency)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if renderOut != "" {
		cfg.ExportDir = renderOut
		cfg.MinIO.Endpoint = ""
	}
	log := logging.NewWithWriter(cfg.Env, cmd.ErrOrStderr())

	ctx := cmd.Context()
	p, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}
	req := creative.Request{
		BackgroundStyle: renderBackground,
		Slogan:          renderSlogan,
		Platform:        preset,
		Currency:        renderCurrency,
		Price:           renderPrice,
		QRText:          renderQR,
	}
	batchID := renderBatch
	if batchID == "" {
		batchID = uuid.NewString()
	}

	results := p.Publish(ctx, batchID, p.RenderBatch(ctx, inputs, req))
	observability.NewPrinter(cmd.OutOrStdout()).PrintResults(batchID, results)

	if renderArchive != "" {
		if err := writeArchive(p, batchID, preset.Name, results, renderArchive); err != nil {
			return err
		}
	}
	return failures(results)
}

// readInputs loads files eagerly; URLs are fetched by the pipeline.
func readInputs(args []string) ([]pipeline.Input, error) {
	inputs := make([]pipeline.Input, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			inputs = append(inputs, pipeline.Input{URL: arg})
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", arg, err)
		}
		inputs = append(inputs, pipeline.Input{Source: arg, Data: data})
	}
	return inputs, nil
}

func writeArchive(p *pipeline.Pipeline, batchID, platform string, results []pipeline.Result, path string) error {
	data, err := p.Archive(batchID, platform, results)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func failures(results []pipeline.Result) error {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	if n > 0 {
		return fmt.Errorf("%d of %d images failed", n, len(results))
	}
	return nil
}
