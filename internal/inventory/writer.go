package inventory

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

const (
	aimSuffix = "-AIM.json"
	dlSuffix  = "-DL.json"
)

// AIM is the asset information written next to the damage and loss model:
// the derived building plus the configuration that selected its fragilities.
type AIM struct {
	Building *domain.Building          `json:"GeneralInformation"`
	Class    domain.BuildingClass      `json:"BuildingClass"`
	Wind     domain.Configuration      `json:"WindConfiguration"`
	Flood    domain.Configuration      `json:"FloodConfiguration"`
	Assembly domain.Assembly           `json:"Assembly"`
	Metadata domain.AssessmentMetadata `json:"Metadata"`
}

// Writer stores assessments as <id>-AIM.json and <id>-DL.json files.
type Writer struct {
	Dir    string
	Pretty bool
}

// Write stores a. The directory is created on first use.
func (w *Writer) Write(a *domain.Assessment) error {
	if a == nil || a.Model == nil {
		return eris.New("inventory: nothing to write")
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return eris.Wrapf(err, "inventory: create %s", w.Dir)
	}

	aim := AIM{
		Building: a.Building,
		Class:    a.Class,
		Wind:     a.Wind,
		Flood:    a.Flood,
		Assembly: a.Assembly,
		Metadata: a.Metadata,
	}
	if err := w.writeJSON(a.ID+aimSuffix, aim); err != nil {
		return err
	}
	return w.writeJSON(a.ID+dlSuffix, a.Model)
}

// Encode marshals v with the writer's formatting.
func (w *Writer) Encode(v any) ([]byte, error) {
	if w.Pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func (w *Writer) writeJSON(name string, v any) error {
	data, err := w.Encode(v)
	if err != nil {
		return eris.Wrapf(err, "inventory: encode %s", name)
	}
	path := filepath.Join(w.Dir, filepath.Base(name))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "inventory: write %s", path)
	}
	return nil
}
