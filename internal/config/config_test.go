package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load_missingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Load_emptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Load_overridesDefaultsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flexproc.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("max_mappings: 16\nsink_format: machine\n"), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 16, cfg.MaxMappings)
	assert.Equal(t, "machine", cfg.SinkFormat)
	assert.Equal(t, Default().LongMsgTTL, cfg.LongMsgTTL)
}
