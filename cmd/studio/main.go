// Package main is the creative studio CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagAssets  string
	flagFont    string
	flagRules   string
	flagRemover string
	flagWorkers int
)

var rootCmd = &cobra.Command{
	Use:          "studio",
	Short:        "Branded marketing creatives from product photos",
	Long:         "studio removes product photo backgrounds, composes them onto placement-sized branded canvases and checks slogans against the copy rules.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagAssets, "assets", "", "Directory holding logo_hd.png / logo.png (overrides ASSETS_DIR)")
	pf.StringVar(&flagFont, "font", "", "TrueType/OpenType font file (overrides FONT_PATH)")
	pf.StringVar(&flagRules, "rules", "", "Compliance rules CSV (overrides COMPLIANCE_RULES)")
	pf.StringVar(&flagRemover, "remover", "", "Background remover: http, key or none (overrides REMOVER)")
	pf.IntVar(&flagWorkers, "workers", 0, "Concurrent renders (overrides WORKERS)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
