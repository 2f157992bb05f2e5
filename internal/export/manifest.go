package export

import (
	"sort"
	"strconv"
	"strings"
)

const ManifestName = "manifest.txt"

type ManifestEntry struct {
	Index    int      `json:"index"`
	Source   string   `json:"source"`
	Filename string   `json:"filename"`
	Status   string   `json:"status"`
	Issues   []string `json:"issues"`
	Error    string   `json:"error,omitempty"`
}

type Manifest struct {
	BatchID  string          `json:"batch_id"`
	Platform string          `json:"platform"`
	Entries  []ManifestEntry `json:"entries"`
}

// ExportManifestText renders one line per entry, ordered by index, with the
// entry's issues indented below it.
func ExportManifestText(m Manifest) string {
	lines := []string{}
	if m.BatchID != "" {
		lines = append(lines, "# batch "+m.BatchID)
	}
	if m.Platform != "" {
		lines = append(lines, "# platform "+m.Platform)
	}
	entries := make([]ManifestEntry, len(m.Entries))
	copy(entries, m.Entries)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Index < entries[j].Index })
	for _, e := range entries {
		status := e.Status
		if e.Error != "" {
			status = "ERROR"
		}
		name := e.Filename
		if name == "" {
			name = "-"
		}
		lines = append(lines, strings.TrimSpace(strconv.Itoa(e.Index+1)+"\t"+status+"\t"+name+"\t"+e.Source))
		if e.Error != "" {
			lines = append(lines, "\t"+e.Error)
		}
		for _, issue := range e.Issues {
			lines = append(lines, "\t"+issue)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
