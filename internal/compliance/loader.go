package compliance

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

func parseListCell(s string) []string {
	s = strings.ReplaceAll(s, "／", "/")
	parts := strings.Split(s, "/")
	out := []string{}
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// LoadRulesCSV reads a rule table with the header code,keywords,message.
// Keywords are separated by "/"; rows without keywords are skipped.
func LoadRulesCSV(path string) ([]Rule, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range []string{"code", "keywords", "message"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("csv %s: missing column %q", path, name)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Rule{}
	for _, row := range rows[1:] {
		kw := parseListCell(get(row, "keywords"))
		if len(kw) == 0 {
			continue
		}
		out = append(out, Rule{
			Code:     get(row, "code"),
			Keywords: kw,
			Message:  get(row, "message"),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("csv %s: no rules", path)
	}
	return out, nil
}
