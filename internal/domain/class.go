package domain

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// BuildingClass is a Hazus hurricane building class.
type BuildingClass uint8

// Hazus hurricane building classes. The zero value is not a class.
const (
	ClassUnknown BuildingClass = iota
	ClassWSF                   // wood single-family
	ClassWMUH                  // wood multi-unit housing
	ClassMSF                   // masonry single-family
	ClassMMUH                  // masonry multi-unit housing
	ClassMLRM                  // masonry low-rise strip mall
	ClassMLRI                  // masonry low-rise industrial
	ClassMERB                  // masonry engineered residential
	ClassMECB                  // masonry engineered commercial
	ClassCECB                  // concrete engineered commercial
	ClassCERB                  // concrete engineered residential
	ClassSPMB                  // steel pre-engineered metal building
	ClassSECB                  // steel engineered commercial
	ClassSERB                  // steel engineered residential
	ClassMH                    // manufactured home

	// NumBuildingClasses sizes arrays indexed by BuildingClass.
	NumBuildingClasses
)

var classNames = [NumBuildingClasses]string{
	ClassUnknown: "",
	ClassWSF:     "WSF",
	ClassWMUH:    "WMUH",
	ClassMSF:     "MSF",
	ClassMMUH:    "MMUH",
	ClassMLRM:    "MLRM",
	ClassMLRI:    "MLRI",
	ClassMERB:    "MERB",
	ClassMECB:    "MECB",
	ClassCECB:    "CECB",
	ClassCERB:    "CERB",
	ClassSPMB:    "SPMB",
	ClassSECB:    "SECB",
	ClassSERB:    "SERB",
	ClassMH:      "MH",
}

// AllBuildingClasses returns every valid class in declaration order.
func AllBuildingClasses() []BuildingClass {
	out := make([]BuildingClass, 0, NumBuildingClasses-1)
	for c := ClassWSF; c < NumBuildingClasses; c++ {
		out = append(out, c)
	}
	return out
}

// Valid reports whether c is one of the enumerated classes.
func (c BuildingClass) Valid() bool {
	return c > ClassUnknown && c < NumBuildingClasses
}

func (c BuildingClass) String() string {
	if c < NumBuildingClasses {
		return classNames[c]
	}
	return fmt.Sprintf("BuildingClass(%d)", uint8(c))
}

// ParseBuildingClass parses a class tag such as "WSF" (case-insensitive).
func ParseBuildingClass(s string) (BuildingClass, error) {
	tag := strings.ToUpper(strings.TrimSpace(s))
	for c := ClassWSF; c < NumBuildingClasses; c++ {
		if classNames[c] == tag {
			return c, nil
		}
	}
	return ClassUnknown, eris.Errorf("unknown building class %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c BuildingClass) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, eris.Errorf("invalid building class %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *BuildingClass) UnmarshalText(text []byte) error {
	parsed, err := ParseBuildingClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
