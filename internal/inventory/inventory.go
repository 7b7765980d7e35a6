// Package inventory reads building inventories and writes the per-building
// output files.
package inventory

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Entry is one building of an inventory.
type Entry struct {
	// Source names where the entry came from: a file path, or a shapefile
	// path and row.
	Source string
	Raw    domain.RawRecord
}

// ReadBIM decodes one building information model. Both {"GI": {...}} and a
// bare attribute object are accepted.
func ReadBIM(r io.Reader) (domain.RawRecord, error) {
	var doc map[string]any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, eris.Wrap(err, "inventory: decode BIM")
	}
	if gi, ok := doc["GI"].(map[string]any); ok {
		return domain.RawRecord(gi), nil
	}
	if gi, ok := doc["GeneralInformation"].(map[string]any); ok {
		return domain.RawRecord(gi), nil
	}
	return domain.RawRecord(doc), nil
}

// LoadFile reads one BIM file.
func LoadFile(path string) (domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "inventory: open %s", path)
	}
	defer func() { _ = f.Close() }()

	raw, err := ReadBIM(f)
	if err != nil {
		return nil, eris.Wrapf(err, "inventory: read %s", path)
	}
	return raw, nil
}

// LoadDir reads every *.json file of dir in name order. Output files
// written by Writer are skipped.
func LoadDir(dir string) ([]Entry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, eris.Wrapf(err, "inventory: list %s", dir)
	}
	sort.Strings(paths)

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		if isOutput(p) {
			continue
		}
		raw, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Source: p, Raw: raw})
	}
	return entries, nil
}

// Load reads an inventory from a BIM file, a directory of BIM files or a
// shapefile.
func Load(path string) ([]Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, eris.Wrapf(err, "inventory: stat %s", path)
	}

	switch {
	case info.IsDir():
		return LoadDir(path)
	case strings.EqualFold(filepath.Ext(path), ".shp"):
		return LoadShapefile(path)
	default:
		raw, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return []Entry{{Source: path, Raw: raw}}, nil
	}
}

func isOutput(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, aimSuffix) || strings.HasSuffix(base, dlSuffix)
}
