// Package flood holds the rulesets that run beside the wind configuration:
// the Hazus flood occupancy type, the flood damage configuration and the
// surge assembly names.
package flood

import (
	"strconv"
	"strings"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
	"github.com/opensource-finance/hurricane-autopop/internal/tables"
)

// Flood hazard types.
const (
	riverine = "raz"
	coastalV = "cvz"
)

// Basement types.
const (
	basementNone   = "bn"
	basementWalled = "bw"
	basementSplit  = "spt"
)

// splitLevelFoundation is the NJDEP code of a basement foundation.
const splitLevelFoundation = 3504

// noBasementFoundations lists the NJDEP foundation codes without a basement.
var noBasementFoundations = map[int]bool{
	3501: true, 3502: true, 3503: true, 3505: true, 3506: true, 3507: true,
}

// Ruleset evaluates the flood rules against one table set. It is safe for
// concurrent use.
type Ruleset struct {
	tables *tables.Tables
}

// New creates a Ruleset over t.
func New(t *tables.Tables) *Ruleset {
	return &Ruleset{tables: t}
}

// PostFIRM reports whether b was built after its municipality adopted a
// flood insurance rate map. Unknown municipalities are pre-FIRM.
func (r *Ruleset) PostFIRM(b *domain.Building) bool {
	year, ok := r.tables.FIRMYear(b.City)
	return ok && b.YearBuilt > year
}

// Classify returns the Hazus flood occupancy type of b, such as SF1XA,
// SF2BV, APT or RETAL.
func (r *Ruleset) Classify(b *domain.Building) (string, error) {
	occ := b.OccupancyClass
	switch {
	case occ == "RES1":
		suffix := "A"
		if surgeType(b.FloodZone) == coastalV {
			suffix = "V"
		}
		if b.NumberOfStories <= 1 {
			return "SF1X" + suffix, nil
		}
		switch basement(b) {
		case basementNone:
			return "SF2X" + suffix, nil
		case basementSplit:
			return "SF2S" + suffix, nil
		default:
			return "SF2B" + suffix, nil
		}
	case strings.HasPrefix(occ, "RES3"):
		return "APT", nil
	}

	if ot, ok := r.tables.FloodOccupancy[occ]; ok {
		return ot, nil
	}
	return "", &domain.UnknownAttributeValueError{Field: "OccupancyClass", Value: occ}
}

// Configure returns the flood damage configuration of b:
// fl_RES1_s{stories}_{basement}_{type}, fl_RES1_sl_bw_{type} for split
// levels, fl_RES3 for any apartment and fl_{occupancy} otherwise.
func (r *Ruleset) Configure(b *domain.Building) domain.Configuration {
	ft := floodType(b.FloodZone)
	bmt := basement(b)

	var key string
	switch occ := b.OccupancyClass; {
	case occ == "RES1" && bmt == basementSplit:
		key = strings.Join([]string{"fl", occ, "sl", basementWalled, ft}, "_")
	case occ == "RES1":
		key = strings.Join([]string{"fl", occ, "s" + strconv.Itoa(b.Stories(3)), bmt, ft}, "_")
	case strings.HasPrefix(occ, "RES3"):
		key = "fl_RES3"
	default:
		key = "fl_" + occ
	}

	return domain.Configuration{
		Key: key,
		Features: map[string]string{
			"FloodType":           ft,
			"BasementType":        bmt,
			"PostFIRM":            strconv.FormatBool(r.PostFIRM(b)),
			"FirstFloorElevation": strconv.FormatFloat(b.FirstFloorElevation, 'f', -1, 64),
		},
	}
}

// Assemble returns the hurricane and flood surge assemblies of b.
func (r *Ruleset) Assemble(b *domain.Building) (domain.Assembly, error) {
	ot, err := r.Classify(b)
	if err != nil {
		return domain.Assembly{}, err
	}
	firm := "0"
	if r.PostFIRM(b) {
		firm = "1"
	}
	return domain.Assembly{
		Hurricane: strings.Join([]string{"hu_surge_assm", ot, firm}, "_"),
		Flood:     strings.Join([]string{"fl_surge_assm", ot, firm, surgeType(b.FloodZone)}, "_"),
	}, nil
}

// floodType is the hazard type of the damage configuration: only shallow
// AO zones are riverine.
func floodType(zone string) string {
	if zone == "AO" {
		return riverine
	}
	return coastalV
}

// surgeType is the hazard type of the assemblies and occupancy types, where
// every A zone is riverine.
func surgeType(zone string) string {
	switch zone {
	case "A", "AE", "AO":
		return riverine
	}
	return coastalV
}

func basement(b *domain.Building) string {
	switch {
	case b.FoundationType == splitLevelFoundation && b.SplitLevel:
		return basementSplit
	case noBasementFoundations[b.FoundationType]:
		return basementNone
	}
	return basementWalled
}
