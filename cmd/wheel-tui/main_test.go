package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reward_wheel/internal/spinner"
)

func TestParseSegments(t *testing.T) {
	segments, err := parseSegments([]byte(`
segments:
  - name: Coffee
    color: "#6f4e37"
    probability: 70
  - name: Cake
    color: pink
    probability: 30
`))
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, spinner.Segment{Name: "Coffee", Color: "#6f4e37", Probability: 70}, segments[0])
	assert.Equal(t, "pink", segments[1].Color)
}

func TestParseSegments_EmptyGivesDemo(t *testing.T) {
	segments, err := parseSegments([]byte("wheel:\n  size: 120\n"))
	require.NoError(t, err)
	assert.Equal(t, demoSegments, segments)
}

func TestParseSegments_Invalid(t *testing.T) {
	_, err := parseSegments([]byte(`
segments:
  - name: Bad
    color: "#123"
    probability: -1
`))
	assert.ErrorIs(t, err, spinner.ErrNegativeProbability)

	_, err = parseSegments([]byte("segments: ["))
	assert.Error(t, err)
}

func TestLoadSegments_MissingFile(t *testing.T) {
	segments, err := loadSegments(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, demoSegments, segments)
}

func TestEngineConfig(t *testing.T) {
	cfg := engineConfig(nil, demoSegments)
	assert.Equal(t, spinner.DefaultButtonText, cfg.ButtonText)
	assert.Equal(t, float64(spinner.DefaultSize), cfg.Size)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wheel:\n  button_text: GO\n  down_duration: 2s\n"), 0o600))
	wc, err := loadWheelConfig(path)
	require.NoError(t, err)

	cfg = engineConfig(wc, demoSegments)
	assert.Equal(t, "GO", cfg.ButtonText)
	assert.Equal(t, 2*time.Second, cfg.DownDuration)
	assert.Equal(t, spinner.DefaultUpDuration, cfg.UpDuration)
	assert.NoError(t, cfg.ValidateDrawing())
}

func TestLoadWheelConfig_MissingFile(t *testing.T) {
	wc, err := loadWheelConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, wc)
}
