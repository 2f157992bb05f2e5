// Package compliance scans marketing copy for regulated claim categories.
package compliance

type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Verdict is the outcome of a check. Issues are ordered: rule violations
// first, then informational notes, or a single all-clear message.
type Verdict struct {
	Status Status   `json:"status"`
	Issues []string `json:"issues"`
}

func (v Verdict) Passed() bool {
	return v.Status == StatusPass
}

// Rule flags copy containing any of its keywords.
type Rule struct {
	Code     string   `json:"code"`
	Keywords []string `json:"keywords"`
	Message  string   `json:"message"`
}
