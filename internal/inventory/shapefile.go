package inventory

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// planAreaField receives the footprint area when the attribute table has
// no plan area of its own.
const planAreaField = "PlanArea"

// LoadShapefile reads a building footprint shapefile. DBF attributes become
// the raw record; polygon footprints fill PlanArea, in the square units of
// the layer's projection, when the attributes carry none.
func LoadShapefile(path string) ([]Entry, error) {
	dbf := strings.TrimSuffix(path, filepath.Ext(path)) + ".dbf"
	if _, err := os.Stat(dbf); err != nil {
		return nil, eris.Wrapf(err, "inventory: attribute table for %s", path)
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "inventory: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	// Fields reports an unreadable table as no fields.
	fields := reader.Fields()
	if len(fields) == 0 {
		return nil, eris.Errorf("inventory: %s has no attribute fields", dbf)
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	var entries []Entry
	for reader.Next() {
		row, shape := reader.Shape()

		raw := make(domain.RawRecord, len(names)+1)
		for i, name := range names {
			v := strings.Trim(reader.Attribute(i), " \x00")
			if v == "" {
				continue
			}
			raw[name] = v
		}

		if !raw.Has(planAreaField, "area", "PlanArea1", "Area", "PlanArea0") {
			if area, ok := footprintArea(shape); ok {
				raw[planAreaField] = area
			}
		}

		entries = append(entries, Entry{
			Source: fmt.Sprintf("%s#%d", path, row),
			Raw:    raw,
		})
	}

	zap.L().Debug("shapefile loaded",
		zap.String("path", path),
		zap.Int("records", len(entries)),
	)
	return entries, nil
}

// footprintArea returns the area of a polygon footprint. The first ring is
// the outline and later rings are holes.
func footprintArea(s shp.Shape) (float64, bool) {
	p, ok := s.(*shp.Polygon)
	if !ok || p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return 0, false
	}

	flat := make([]float64, 0, 2*len(p.Points))
	ends := make([]int, 0, p.NumParts)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}
		ends = append(ends, len(flat))
	}

	area := math.Abs(geom.NewPolygonFlat(geom.XY, flat, ends).Area())
	if area == 0 || math.IsNaN(area) {
		return 0, false
	}
	return area, true
}
