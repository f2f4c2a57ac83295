package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logo-scene/config"
)

func parse(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	var f flags
	cmd := &cobra.Command{Use: "viewer"}
	bindFlags(cmd, &f)
	require.NoError(t, cmd.ParseFlags(args))
	return resolveConfig(cmd, f)
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestResolveConfigFlags(t *testing.T) {
	cfg, err := parse(t, "--model", "other.glb", "--envmap", "env/1", "--shadows", "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, "other.glb", cfg.Assets.Model)
	assert.Equal(t, "env/1", cfg.Assets.EnvMap)
	assert.True(t, cfg.Render.Shadows)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[assets]
model = "from-file.glb"

[render]
shadows = true

[log]
level = "warn"
`), 0o644))

	cfg, err := parse(t, "--config", path, "--log-level", "error", "--shadows=false")
	require.NoError(t, err)
	assert.Equal(t, "from-file.glb", cfg.Assets.Model)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.False(t, cfg.Render.Shadows)
}

func TestResolveConfigRejectsBadLevel(t *testing.T) {
	_, err := parse(t, "--log-level", "loud")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "warn")
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=1")
}

func TestRunInfo(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}})
	doc.Meshes = []*gltf.Mesh{{
		Name:       "Tri",
		Primitives: []*gltf.Primitive{{Attributes: map[string]int{gltf.POSITION: pos}}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "Logo", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}
	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))

	var out bytes.Buffer
	require.NoError(t, runInfo(&out, path))
	text := out.String()
	assert.Contains(t, text, "Top level:  1 [Logo]")
	assert.Contains(t, text, "Vertices:   3")
	assert.Contains(t, text, "Triangles:  1")
	assert.Contains(t, text, "Size:       1.000 x 2.000 x 0.000")
}

func TestInfoCommandNeedsPath(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"info"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
