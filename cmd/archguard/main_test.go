package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	require.Equal(t, "modules", cfg.Root)

	aliases := cfg.aliases()
	require.Equal(t, cleanarch.LayerDomain, aliases["domain"])
	require.Equal(t, cleanarch.LayerApplication, aliases["services"])
	require.Equal(t, cleanarch.LayerInterfaces, aliases["presentation"])
	require.Equal(t, cleanarch.LayerInfrastructure, aliases["infrastructure"])
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".archguard.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
root: internal
ignore_tests: true
shared_modules: [absencetest]
layers:
  application: [services, usecases]
`), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "internal", cfg.Root)
	require.True(t, cfg.IgnoreTests)
	aliases := cfg.aliases()
	require.Equal(t, cleanarch.LayerApplication, aliases["usecases"])
	require.Equal(t, cleanarch.LayerDomain, aliases["domain"])
}

func TestFilter(t *testing.T) {
	t.Parallel()

	cfg := &config{
		SharedModules: []string{"directory"},
		Allow:         []string{"presentation/dtos"},
	}
	found := []cleanarch.ValidationError{
		cleanarch.ValidationError(errors.New("cannot import between checkin and directory modules")),
		cleanarch.ValidationError(errors.New("services imports presentation/dtos")),
		cleanarch.ValidationError(errors.New("domain imports infrastructure/api")),
	}
	require.Equal(t, []string{"domain imports infrastructure/api"}, cfg.filter(found))
}
