package assemble

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

func testInput() *Input {
	return &Input{
		TraceID:       "trace-001",
		RuleID:        "wood-single-family",
		ReferenceYear: 2026,
		Building:      &domain.Building{ID: "bldg-7", ReplacementCost: 250},
		Class:         domain.ClassWSF,
		Wind:          domain.Configuration{Key: "WSF2_gab_0_8d_tnail_no_0_15"},
		Flood:         domain.Configuration{Key: "fl_RES1_s2_bn_cvz"},
		Assembly:      domain.Assembly{Hurricane: "hu_surge_assm_SF2XV_0", Flood: "fl_surge_assm_SF2XV_0_cvz"},
	}
}

func TestProcessor(t *testing.T) {
	proc := NewProcessor()

	t.Run("Assessment", func(t *testing.T) {
		a := proc.Process(testInput())

		if a.ID != "bldg-7" {
			t.Errorf("expected ID 'bldg-7', got '%s'", a.ID)
		}
		if a.Class != domain.ClassWSF {
			t.Errorf("expected WSF, got %s", a.Class)
		}
		if a.Metadata.TraceID != "trace-001" {
			t.Errorf("expected traceID 'trace-001', got '%s'", a.Metadata.TraceID)
		}
		if a.Metadata.RuleID != "wood-single-family" {
			t.Errorf("expected rule 'wood-single-family', got '%s'", a.Metadata.RuleID)
		}
		if a.Metadata.EngineVersion != EngineVersion {
			t.Errorf("expected engine %s, got %s", EngineVersion, a.Metadata.EngineVersion)
		}
	})

	t.Run("GeneratedID", func(t *testing.T) {
		in := testInput()
		in.Building.ID = ""

		a := proc.Process(in)
		if _, err := uuid.Parse(a.ID); err != nil {
			t.Errorf("expected a UUID, got %q: %v", a.ID, err)
		}
	})

	t.Run("Model", func(t *testing.T) {
		m := proc.Process(testInput()).Model

		if m.Method != domain.MethodHazusHU {
			t.Errorf("expected method %q, got %q", domain.MethodHazusHU, m.Method)
		}
		if !m.LossModel.DecisionVariables.ReconstructionCost {
			t.Error("expected reconstruction cost to be requested")
		}
		if m.LossModel.ReplacementCost != 250 {
			t.Errorf("expected replacement cost 250, got %v", m.LossModel.ReplacementCost)
		}

		keys := ComponentKeys(m)
		if len(keys) != 2 || keys[0] != "WSF2_gab_0_8d_tnail_no_0_15" || keys[1] != "fl_RES1_s2_bn_cvz" {
			t.Errorf("unexpected components %v", keys)
		}
		for k, comps := range m.Components {
			if len(comps) != 1 || comps[0] != domain.SingleComponent() {
				t.Errorf("component %s: unexpected %v", k, comps)
			}
		}

		if len(m.Combinations) != 2 || m.Combinations[0] != "hu_surge_assm_SF2XV_0" || m.Combinations[1] != "fl_surge_assm_SF2XV_0_cvz" {
			t.Errorf("unexpected combinations %v", m.Combinations)
		}
	})
}

func TestModelJSON(t *testing.T) {
	m := NewProcessor().Build(
		domain.Configuration{Key: "MH94HUDII_1_1_15"},
		domain.Configuration{Key: "fl_RES2"},
		domain.Assembly{Hurricane: "hu_surge_assm_MH_0", Flood: "fl_surge_assm_MH_0_cvz"},
		100,
	)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc["_method"] != "HAZUS MH HU" {
		t.Errorf("unexpected _method %v", doc["_method"])
	}
	lm := doc["LossModel"].(map[string]any)
	if lm["ReplacementCost"] != 100.0 {
		t.Errorf("unexpected ReplacementCost %v", lm["ReplacementCost"])
	}
	dv := lm["DecisionVariables"].(map[string]any)
	if dv["ReconstructionCost"] != true {
		t.Errorf("unexpected DecisionVariables %v", dv)
	}

	comps := doc["Components"].(map[string]any)
	comp := comps["fl_RES2"].([]any)[0].(map[string]any)
	want := map[string]any{
		"location":        "1",
		"direction":       "1",
		"median_quantity": "1.0",
		"unit":            "ea",
		"distribution":    "N/A",
	}
	for k, v := range want {
		if comp[k] != v {
			t.Errorf("component %s: expected %v, got %v", k, v, comp[k])
		}
	}
}

func TestDisabledReconstructionCost(t *testing.T) {
	proc := &Processor{}
	m := proc.Process(testInput()).Model
	if m.LossModel.DecisionVariables.ReconstructionCost {
		t.Error("expected reconstruction cost to be off")
	}
}
