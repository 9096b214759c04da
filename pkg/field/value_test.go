package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue_Checkbox(t *testing.T) {
	v, err := ParseValue(TypeCheckbox, true)
	require.NoError(t, err)
	assert.Equal(t, KindBool, v.Kind)
	assert.True(t, v.Bool)

	_, err = ParseValue(TypeCheckbox, "yes")
	assert.Error(t, err)
}

func TestParseValue_Progress(t *testing.T) {
	v, err := ParseValue(TypeProgressManual, 65)
	require.NoError(t, err)
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, 65, v.Int)

	// JSON decoding hands numbers over as float64
	v, err = ParseValue(TypeProgressAuto, float64(100))
	require.NoError(t, err)
	assert.Equal(t, 100, v.Int)

	_, err = ParseValue(TypeProgressManual, 101)
	assert.Error(t, err)

	_, err = ParseValue(TypeProgressManual, -1)
	assert.Error(t, err)
}

func TestParseValue_Rating(t *testing.T) {
	v, err := ParseValue(TypeRating, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, v.Int)

	_, err = ParseValue(TypeRating, 0)
	assert.Error(t, err)

	_, err = ParseValue(TypeRating, 6)
	assert.Error(t, err)

	_, err = ParseValue(TypeRating, 3.5)
	assert.Error(t, err)
}

func TestParseValue_NumberAndMoney(t *testing.T) {
	v, err := ParseValue(TypeNumber, 12.5)
	require.NoError(t, err)
	assert.Equal(t, KindNumber, v.Kind)
	assert.Equal(t, 12.5, v.Num)

	v, err = ParseValue(TypeMoney, 4000)
	require.NoError(t, err)
	assert.Equal(t, float64(4000), v.Num)

	_, err = ParseValue(TypeMoney, "4000")
	assert.Error(t, err)
}

func TestParseValue_Date(t *testing.T) {
	v, err := ParseValue(TypeDate, "2024-02-15")
	require.NoError(t, err)
	assert.Equal(t, KindDate, v.Kind)
	assert.Equal(t, "2024-02-15", v.Str)

	_, err = ParseValue(TypeDate, "15/02/2024")
	assert.Error(t, err)

	_, err = ParseValue(TypeDate, 20240215)
	assert.Error(t, err)
}

func TestParseValue_Strings(t *testing.T) {
	for _, fieldType := range []string{TypeText, TypeTextArea, TypeWebsite, TypeEmail, TypePhone, TypeLocation, TypeDropdown} {
		v, err := ParseValue(fieldType, "hello")
		require.NoError(t, err, fieldType)
		assert.Equal(t, KindString, v.Kind, fieldType)
		assert.Equal(t, "hello", v.Str, fieldType)
	}

	_, err := ParseValue(TypeText, 42)
	assert.Error(t, err)
}

func TestParseValue_Labels(t *testing.T) {
	v, err := ParseValue(TypeLabels, []string{"urgent", "design"})
	require.NoError(t, err)
	assert.Equal(t, KindStrings, v.Kind)
	assert.Equal(t, []string{"urgent", "design"}, v.Strs)

	// decoded JSON arrays arrive as []interface{}
	v, err = ParseValue(TypeLabels, []interface{}{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Strs)

	_, err = ParseValue(TypeLabels, []interface{}{"a", 1})
	assert.Error(t, err)

	_, err = ParseValue(TypeLabels, "a,b")
	assert.Error(t, err)
}

func TestParseValue_UnknownTypeFallsBackToRaw(t *testing.T) {
	v, err := ParseValue("tshirt-size", "XL")
	require.NoError(t, err)
	assert.Equal(t, KindRaw, v.Kind)
	assert.Equal(t, "XL", v.Raw)
	assert.Equal(t, "XL", v.Render())
}

func TestValue_Render(t *testing.T) {
	assert.Equal(t, "yes", Value{Kind: KindBool, Bool: true}.Render())
	assert.Equal(t, "no", Value{Kind: KindBool}.Render())
	assert.Equal(t, "12.5", Value{Kind: KindNumber, Num: 12.5}.Render())
	assert.Equal(t, "4000", Value{Kind: KindNumber, Num: 4000}.Render())
	assert.Equal(t, "65", Value{Kind: KindInt, Int: 65}.Render())
	assert.Equal(t, "urgent, design", Value{Kind: KindStrings, Strs: []string{"urgent", "design"}}.Render())
	assert.Equal(t, "2024-02-15", Value{Kind: KindDate, Str: "2024-02-15"}.Render())
	assert.Equal(t, "", Value{Kind: KindRaw}.Render())
}
