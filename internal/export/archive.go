package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
)

// Archive packs a name→content path tree into a ZIP artifact. Entries are
// written in sorted path order so a fixed tree always yields the same
// archive layout.
func Archive(paths map[string]string) ([]byte, error) {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("export: archive entry %s: %w", name, err)
		}
		if _, err := f.Write([]byte(paths[name])); err != nil {
			return nil, fmt.Errorf("export: archive write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export: close archive: %w", err)
	}
	return buf.Bytes(), nil
}
