package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/sciexplain/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	doc := `
name: churn-classifier
log_level: 20
target_names: [stay, leave]
unique_values: [1, 0]
`
	cfg, err := LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "churn-classifier", cfg.Name)
	require.NotNil(t, cfg.LogLevel)
	assert.Equal(t, 20, *cfg.LogLevel)
	assert.Equal(t, []string{"stay", "leave"}, cfg.TargetNames)
	assert.Equal(t, []float64{1, 0}, cfg.UniqueValues)

	m := &ModelType{}
	require.NoError(t, m.Init(threshold, cfg.Options()...))
	assert.Equal(t, "churn-classifier", m.Name())
	assert.Equal(t, 20, m.LogLevel())
	assert.Equal(t, []string{"stay", "leave"}, m.TargetNames())
	assert.Equal(t, []float64{0, 1}, m.UniqueValues())
}

func TestLoadConfigEmptyKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Options())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("log_level: -5\n"))
	var valErr *errors.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "log_level", valErr.ParamName)

	_, err = LoadConfig(strings.NewReader("unknown_key: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse model config")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: pricing\n"), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pricing", cfg.Name)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
