package domain

import (
	"fmt"
	"strings"
)

// MissingRequiredFieldError is returned when a required attribute has no raw
// value under any of its accepted names and no default.
type MissingRequiredFieldError struct {
	Field   string
	Aliases []string
}

func (e *MissingRequiredFieldError) Error() string {
	if len(e.Aliases) == 0 {
		return fmt.Sprintf("missing required field %q", e.Field)
	}
	return fmt.Sprintf("missing required field %q (also tried %s)", e.Field, strings.Join(e.Aliases, ", "))
}

// UnknownAttributeValueError is returned when an attribute holds a value
// outside the vocabulary of the table or builder consuming it.
type UnknownAttributeValueError struct {
	Field string
	Value any
	// Class is set when a configuration builder rejected the value.
	Class BuildingClass
}

func (e *UnknownAttributeValueError) Error() string {
	if e.Class.Valid() {
		return fmt.Sprintf("%s: unknown value %v for %s", e.Class, e.Value, e.Field)
	}
	return fmt.Sprintf("unknown value %v for field %q", e.Value, e.Field)
}

// UnclassifiableRecordError is returned when no classification rule matches.
type UnclassifiableRecordError struct {
	Material  string
	Occupancy string
	Stories   int
}

func (e *UnclassifiableRecordError) Error() string {
	return fmt.Sprintf("no building class for material %q, occupancy %q, %d stories",
		e.Material, e.Occupancy, e.Stories)
}

// UnsupportedBuildingClassError is returned when no configuration builder is
// registered for a class.
type UnsupportedBuildingClassError struct {
	Class BuildingClass
}

func (e *UnsupportedBuildingClassError) Error() string {
	return fmt.Sprintf("no configuration builder registered for building class %s", e.Class)
}
