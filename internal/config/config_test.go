package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "sdui.yaml", `log:
  level: debug
  human_readable: true
render:
  column_points: 10
  width: 60
images:
  assets_dir: assets
destinations:
  - key: details
    kind: scene
    path: screens/details.json
    title: Details
  - key: docs
    kind: url
    url: https://example.com/docs
  - key: about
    kind: text
    text: Built with sdui
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Log.HumanReadable)
	require.Equal(t, 10.0, cfg.Render.ColumnPoints)
	require.Equal(t, 16.0, cfg.Render.RowPoints)
	require.Equal(t, 60, cfg.Render.Width)
	require.True(t, cfg.Images.Enabled)
	require.Len(t, cfg.Destinations, 3)
	require.Equal(t, filepath.Join(filepath.Dir(path), "screens/details.json"), cfg.Resolve(cfg.Destinations[0].Path))
	require.Equal(t, "/abs/path.json", cfg.Resolve("/abs/path.json"))
}

func TestLoadTOML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "sdui.toml", `[server]
addr = "0.0.0.0:9000"

[[destinations]]
key = "docs"
kind = "url"
url = "https://example.com"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	require.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	require.Equal(t, "docs", cfg.Destinations[0].Key)
}

func TestLoadFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		file     string
		contents string
		field    string
		hasLine  bool
	}{
		{
			name:     "malformed yaml reports line",
			file:     "bad.yaml",
			contents: "log:\n  level: info\n render: [\n",
			hasLine:  true,
		},
		{
			name:     "malformed toml reports line",
			file:     "bad.toml",
			contents: "[log]\nlevel = \n",
			hasLine:  true,
		},
		{
			name:     "unknown log level",
			file:     "level.yaml",
			contents: "log:\n  level: loud\n",
			field:    "log.level",
		},
		{
			name:     "non-positive scale",
			file:     "scale.yaml",
			contents: "render:\n  row_points: 0\n",
			field:    "render.row_points",
		},
		{
			name:     "unknown destination kind",
			file:     "kind.yaml",
			contents: "destinations:\n  - key: a\n    kind: sheet\n",
			field:    "destinations[0].kind",
		},
		{
			name:     "scene without path",
			file:     "scene.yaml",
			contents: "destinations:\n  - key: a\n    kind: scene\n",
			field:    "destinations[0].path",
		},
		{
			name:     "duplicate key",
			file:     "dup.yaml",
			contents: "destinations:\n  - key: a\n    kind: text\n    text: x\n  - key: a\n    kind: text\n    text: y\n",
			field:    "destinations[1].key",
		},
		{
			name:     "unsupported extension",
			file:     "config.json",
			contents: "{}",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, tc.file, tc.contents)
			_, err := Load(path)
			require.Error(t, err)

			var cfgErr *sduierrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, path, cfgErr.Path)
			if tc.hasLine {
				require.Positive(t, cfgErr.Line)
			}
			if tc.field != "" {
				var valErr *sduierrors.ValidationError
				require.ErrorAs(t, err, &valErr)
				require.Equal(t, tc.field, valErr.Field)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateNil(t *testing.T) {
	t.Parallel()

	require.Error(t, ValidateConfig(nil))
}
