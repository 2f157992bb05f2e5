package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// ArchiveEntry is one file in a batch download.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// archiveTime stamps every entry so identical batches zip to identical bytes.
var archiveTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// BuildArchive packs exported creatives and the manifest into a zip, in the
// given order. Duplicate names are an error.
func BuildArchive(entries []ArchiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Name] {
			return nil, fmt.Errorf("export: duplicate archive entry %s", e.Name)
		}
		seen[e.Name] = true

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: archiveTime,
		})
		if err != nil {
			return nil, fmt.Errorf("export: add %s: %w", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			return nil, fmt.Errorf("export: add %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export: finish archive: %w", err)
	}
	return buf.Bytes(), nil
}
