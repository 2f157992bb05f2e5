// Package observability formats verdicts and render results for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/youruser/creativestudio/internal/compliance"
	"github.com/youruser/creativestudio/internal/pipeline"
)

const (
	// boxWidth is the outer width of printed boxes
	boxWidth = 72
)

// Printer writes boxed summaries to out.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // terminal output
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the box's inner width.
func pad(line string) string {
	inner := boxWidth - 4
	n := utf8.RuneCountInString(line)
	if n > inner {
		r := []rune(line)
		return string(r[:inner-3]) + "..."
	}
	return line + strings.Repeat(" ", inner-n)
}

// PrintVerdict outputs a compliance verdict with one issue per line.
func (p *Printer) PrintVerdict(slogan string, v compliance.Verdict) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Slogan: %q\n", slogan))
	sb.WriteString(fmt.Sprintf("Status: %s\n", v.Status))
	for _, issue := range v.Issues {
		sb.WriteString(fmt.Sprintf("  • %s\n", issue))
	}
	p.printBox("COMPLIANCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResults outputs one line per render result in index order.
func (p *Printer) PrintResults(batchID string, results []pipeline.Result) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Batch: %s\n\n", batchID))
	exported := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			sb.WriteString(fmt.Sprintf("#%d  ERROR  %s\n", r.Index+1, r.Source))
			sb.WriteString(fmt.Sprintf("    %v\n", r.Err))
		case r.ExportKey != "":
			exported++
			sb.WriteString(fmt.Sprintf("#%d  %s  %s\n", r.Index+1, r.Verdict.Status, r.ExportKey))
		default:
			sb.WriteString(fmt.Sprintf("#%d  %s  %s (not exported)\n", r.Index+1, r.Verdict.Status, r.Filename))
		}
	}
	sb.WriteString(fmt.Sprintf("\nExported %d of %d", exported, len(results)))
	p.printBox("RENDER RESULTS", sb.String())
}
