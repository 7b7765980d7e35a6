package domain

// ClassRule is one row of the building classification decision table.
// Rows are evaluated in order and the first matching row decides the class.
type ClassRule struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// CEL expression over material, occupancy, design_level, stories and
	// roof_shape. Must evaluate to bool.
	Expression string `json:"expression" yaml:"expression"`

	Class BuildingClass `json:"class" yaml:"class"`

	Enabled bool `json:"enabled" yaml:"enabled"`
}
