package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/youruser/creativestudio/internal/compliance"
	"github.com/youruser/creativestudio/internal/observability"
	"github.com/youruser/creativestudio/internal/placement"
)

var errComplianceFailed = errors.New("slogan failed compliance")

var checkPlatform string

var checkCmd = &cobra.Command{
	Use:   "check SLOGAN",
	Short: "Check a slogan against the copy rules",
	Long:  `Print the compliance verdict for a slogan. Exits non-zero when the verdict is FAIL.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkPlatform, "platform", "p", placement.SquarePost, "Placement the slogan is for")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if _, ok := placement.Lookup(checkPlatform); !ok {
		return fmt.Errorf("unknown platform %q", checkPlatform)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	checker, err := newChecker(cfg)
	if err != nil {
		return err
	}
	return printCheck(cmd.OutOrStdout(), checker, args[0], checkPlatform)
}

func printCheck(w io.Writer, checker *compliance.Checker, slogan, platform string) error {
	v := checker.Evaluate(slogan, platform)
	observability.NewPrinter(w).PrintVerdict(slogan, v)
	if !v.Passed() {
		return errComplianceFailed
	}
	return nil
}
