package req

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestDecode(t *testing.T) {
	p, err := Decode[payload](strings.NewReader(`{"name":"wheel"}`))
	require.NoError(t, err)
	assert.Equal(t, "wheel", p.Name)

	for name, body := range map[string]string{
		"empty":    "",
		"unknown":  `{"name":"a","extra":1}`,
		"syntax":   `{"name":`,
		"trailing": `{"name":"a"} {"name":"b"}`,
	} {
		_, err := Decode[payload](strings.NewReader(body))
		assert.Error(t, err, name)
	}

	_, err = Decode[payload](nil)
	assert.Error(t, err)
}

type segment struct {
	Name        string  `json:"name" validate:"notblank"`
	Probability float64 `json:"probability" validate:"gte=0"`
}

type wheel struct {
	Segments []segment `json:"segments" validate:"dive"`
}

func TestDecode_Validates(t *testing.T) {
	_, err := Decode[wheel](strings.NewReader(`{"segments":[{"name":"a","probability":10}]}`))
	require.NoError(t, err)

	_, err = Decode[wheel](strings.NewReader(`{"segments":[{"name":"  ","probability":10}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segments[0].name is required")

	_, err = Decode[wheel](strings.NewReader(`{"segments":[{"name":"a","probability":-1}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segments[0].probability must be at least 0")
}

func TestValidate_NonStruct(t *testing.T) {
	assert.NoError(t, Validate([]int{1}))
	n, err := Decode[map[string]int](strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, 1, n["a"])
}
