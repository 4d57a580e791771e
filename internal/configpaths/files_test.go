package configpaths_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/keygrab/internal/configpaths"
)

func TestConfigCandidatePathsUserFirst(t *testing.T) {
	tests := []struct {
		user string
		pick func(j, y, tm []string) []string
	}{
		{"my.yaml", func(j, y, tm []string) []string { return y }},
		{"my.yml", func(j, y, tm []string) []string { return y }},
		{"my.toml", func(j, y, tm []string) []string { return tm }},
		{"my.json", func(j, y, tm []string) []string { return j }},
		{"my.conf", func(j, y, tm []string) []string { return j }},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			j, y, tm := configpaths.ConfigCandidatePaths(tt.user)
			list := tt.pick(j, y, tm)
			require.NotEmpty(t, list)
			assert.Equal(t, tt.user, list[0])
		})
	}
}

func TestFirstExisting(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("config dir comes from AppData on windows")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(t.TempDir())

	_, ok := configpaths.FirstExisting("")
	if ok {
		t.Skip("a system-wide keygrab config exists on this machine")
	}

	p := filepath.Join(dir, "keygrab", "run.toml")
	require.NoError(t, configpaths.EnsureDir(p))
	require.NoError(t, os.WriteFile(p, []byte("watch = true\n"), 0o644))

	got, ok := configpaths.FirstExisting("")
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestExt(t *testing.T) {
	assert.Equal(t, "yaml", configpaths.Ext("yml"))
	assert.Equal(t, "toml", configpaths.Ext("toml"))
	assert.Equal(t, "json", configpaths.Ext(""))
}
