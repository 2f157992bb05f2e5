package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/youruser/creativestudio/internal/placement"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List placement presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writePresets(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func writePresets(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tSAFE ZONE")
	for _, p := range placement.All() {
		zone := "-"
		if p.HasSafeZone() {
			zone = fmt.Sprintf("top %dpx, bottom %dpx", p.SafeZone.Top, p.SafeZone.Bottom)
		}
		fmt.Fprintf(tw, "%s\t%dx%d\t%s\n", p.Name, p.Width, p.Height, zone)
	}
	return tw.Flush()
}
