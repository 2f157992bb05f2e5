package compliance

import (
	"strings"

	"github.com/youruser/creativestudio/internal/placement"
)

const (
	storySafeZoneNote = "INFO: Story format. Key content is kept clear of the top 200px and bottom 250px safe zones."
	allClearMessage   = "PASS: All compliance checks passed."
)

// DefaultRules is the fixed rule table. Matching is plain substring
// containment on lower-cased copy, so "winter" trips "win".
var DefaultRules = []Rule{
	{
		Code:     "green_claims",
		Keywords: []string{"sustainable", "green", "eco-friendly", "carbon", "planet"},
		Message:  "FAIL: Green or sustainability claims detected. Environmental claims are not permitted on creatives.",
	},
	{
		Code:     "competition",
		Keywords: []string{"win", "competition", "prize", "enter now", "lucky"},
		Message:  "FAIL: Competition or prize language detected. Promotions of this kind are not permitted on creatives.",
	},
}

// Checker evaluates copy against a rule table.
type Checker struct {
	rules []Rule
}

// NewChecker builds a checker over rules, or DefaultRules when rules is empty.
func NewChecker(rules []Rule) *Checker {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	cp := make([]Rule, len(rules))
	for i, r := range rules {
		kw := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kw = append(kw, k)
			}
		}
		cp[i] = Rule{Code: r.Code, Keywords: kw, Message: r.Message}
	}
	return &Checker{rules: cp}
}

var defaultChecker = NewChecker(nil)

// Evaluate checks slogan with the default rule table.
func Evaluate(slogan, platform string) Verdict {
	return defaultChecker.Evaluate(slogan, platform)
}

// Evaluate runs every rule in order, then appends the story safe-zone note
// when platform is the story preset, then the all-clear message when no rule
// failed.
func (c *Checker) Evaluate(slogan, platform string) Verdict {
	text := strings.ToLower(slogan)
	v := Verdict{Status: StatusPass, Issues: []string{}}
	for _, r := range c.rules {
		if containsAny(text, r.Keywords) {
			v.Status = StatusFail
			v.Issues = append(v.Issues, r.Message)
		}
	}
	if platform == placement.Story {
		v.Issues = append(v.Issues, storySafeZoneNote)
	}
	if v.Status == StatusPass {
		v.Issues = append(v.Issues, allClearMessage)
	}
	return v
}

// Rules returns a copy of the checker's rule table.
func (c *Checker) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
