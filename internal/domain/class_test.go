package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildingClassRoundTrip(t *testing.T) {
	classes := AllBuildingClasses()
	require.Len(t, classes, 14)
	assert.Equal(t, ClassWSF, classes[0])
	assert.Equal(t, ClassMH, classes[len(classes)-1])

	for _, c := range classes {
		parsed, err := ParseBuildingClass(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestParseBuildingClass(t *testing.T) {
	c, err := ParseBuildingClass(" wmuh ")
	require.NoError(t, err)
	assert.Equal(t, ClassWMUH, c)

	_, err = ParseBuildingClass("EF")
	assert.Error(t, err)

	_, err = ParseBuildingClass("")
	assert.Error(t, err)
}

func TestBuildingClassJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Class BuildingClass `json:"class"`
	}{ClassSPMB})
	require.NoError(t, err)
	assert.JSONEq(t, `{"class":"SPMB"}`, string(data))

	var out struct {
		Class BuildingClass `json:"class"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"class":"MLRI"}`), &out))
	assert.Equal(t, ClassMLRI, out.Class)

	_, err = json.Marshal(ClassUnknown)
	assert.Error(t, err)
	assert.False(t, ClassUnknown.Valid())
	assert.Equal(t, "BuildingClass(200)", BuildingClass(200).String())
}

func TestErrorMessages(t *testing.T) {
	err := &MissingRequiredFieldError{Field: "YearBuilt", Aliases: []string{"yearBuilt"}}
	assert.Contains(t, err.Error(), "YearBuilt")
	assert.Contains(t, err.Error(), "yearBuilt")

	unknown := &UnknownAttributeValueError{Field: "RoofShape", Value: "dome", Class: ClassWSF}
	assert.Equal(t, "WSF: unknown value dome for RoofShape", unknown.Error())

	unclassified := &UnclassifiableRecordError{Material: "Adobe", Occupancy: "RES1", Stories: 1}
	assert.Contains(t, unclassified.Error(), "Adobe")

	unsupported := &UnsupportedBuildingClassError{Class: ClassMH}
	assert.Contains(t, unsupported.Error(), "MH")
}
