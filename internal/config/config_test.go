package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palette/internal/domain"
	"palette/internal/engine"
	"palette/internal/scorer"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigServiceAt(filepath.Join(t.TempDir(), "absent.toml"))
	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathMissing(t *testing.T) {
	cs := NewConfigService()
	_, err := cs.LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "palette.toml", `
[engine]
loop = true
scorer = "substring"

[logging]
env = "prod"
level = "warn"

[[catalog.items]]
value = "  Search files "
keywords = ["find"]

[[catalog.groups]]
id = "fruits"
heading = "Fruits"

[[catalog.groups.items]]
id = "apple"
value = "Apple"

[[catalog.groups.items]]
value = "Banana"
disabled = true
`)
	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)

	assert.True(t, cfg.Engine.ShouldFilter, "unset keys keep their defaults")
	assert.True(t, cfg.Engine.Loop)
	assert.Equal(t, scorer.NameSubstring, cfg.Engine.Scorer)
	assert.Equal(t, "prod", cfg.Logging.Env)
	assert.Equal(t, "warn", cfg.Logging.Level)
	require.Len(t, cfg.Catalog.Groups, 1)
	assert.Equal(t, "apple", cfg.Catalog.Groups[0].Items[0].ID)
	assert.True(t, cfg.Catalog.Groups[0].Items[1].Disabled)
	assert.Equal(t, 3, cfg.Catalog.Len())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "palette.yaml", `
engine:
  should_filter: false
catalog:
  items:
    - value: Alpha
    - value: Beta
      keywords: [second]
`)
	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)

	assert.False(t, cfg.Engine.ShouldFilter)
	assert.Equal(t, scorer.NameFuzzy, cfg.Engine.Scorer)
	require.Len(t, cfg.Catalog.Items, 2)
	assert.Equal(t, []string{"second"}, cfg.Catalog.Items[1].Keywords)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	toml := writeFile(t, "bad.toml", "[engine]\nloops = true\n")
	_, err := NewConfigService().LoadFromPath(toml)
	assert.Error(t, err)

	yml := writeFile(t, "bad.yml", "engine:\n  loops: true\n")
	_, err = NewConfigService().LoadFromPath(yml)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown scorer", "[engine]\nscorer = \"magic\"\n"},
		{"threshold out of range", "[engine]\ntypo_threshold = 1.5\n"},
		{"unknown logging env", "[logging]\nenv = \"staging\"\n"},
		{"negative height", "[ui]\nheight = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "c.toml", tt.content)
			_, err := NewConfigService().LoadFromPath(path)
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "config.json", "{}")
	_, err := NewConfigService().LoadFromPath(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	err = NewConfigService().SaveToPath(DefaultConfig(), filepath.Join(t.TempDir(), "c.ini"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"nested/config.toml", "nested/config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cs := NewConfigServiceAt(path)
			want := SampleConfig()
			want.Engine.Loop = true

			require.NoError(t, cs.Save(want))
			got, err := cs.Load()
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, path, cs.Path())
		})
	}
}

func TestSampleConfigIsValid(t *testing.T) {
	require.NoError(t, SampleConfig().Validate())
	require.NoError(t, DefaultConfig().Validate())
}

func TestItemIDIsDeterministic(t *testing.T) {
	assert.Equal(t, ItemID("g", "Apple"), ItemID("g", " Apple "))
	assert.NotEqual(t, ItemID("g", "Apple"), ItemID("h", "Apple"))
	assert.NotEqual(t, ItemID("", "Apple"), ItemID("", "Banana"))
}

func TestCatalogValidate(t *testing.T) {
	dupValue := Catalog{Groups: []CatalogGroup{{ID: "g", Items: []CatalogItem{{Value: "a"}, {Value: "a"}}}}}
	assert.ErrorIs(t, dupValue.Validate(), ErrDuplicateItem)

	dupID := Catalog{Items: []CatalogItem{{ID: "x", Value: "a"}, {ID: "x", Value: "b"}}}
	assert.ErrorIs(t, dupID.Validate(), ErrDuplicateItem)

	sameValueOtherGroup := Catalog{Groups: []CatalogGroup{
		{ID: "g", Items: []CatalogItem{{Value: "a"}}},
		{ID: "h", Items: []CatalogItem{{Value: "a"}}},
	}}
	assert.NoError(t, sameValueOtherGroup.Validate())

	anonymous := Catalog{Groups: []CatalogGroup{{Items: []CatalogItem{{Value: "a"}}}}}
	assert.ErrorIs(t, anonymous.Validate(), ErrUnknownGroup)

	empty := Catalog{Items: []CatalogItem{{Value: "  "}}}
	assert.Error(t, empty.Validate())
}

func TestCatalogHeadings(t *testing.T) {
	c := Catalog{Groups: []CatalogGroup{{ID: "a", Heading: "Alpha"}, {ID: "b"}}}
	assert.Equal(t, map[string]string{"a": "Alpha", "b": "b"}, c.Headings())
}

func TestCatalogRegister(t *testing.T) {
	var picked []string
	e := engine.New()
	n := SampleConfig().Catalog.Register(e, func(v string) { picked = append(picked, v) })
	e.Flush()

	assert.Equal(t, 8, n)
	snap := e.Snapshot()
	assert.Equal(t, 8, snap.VisibleCount())
	assert.Equal(t, []string{"fruits", "settings"}, snap.GroupOrder())
	assert.Equal(t, "Search files", snap.SelectedValue())

	rows := snap.Rows()
	assert.Equal(t, ItemID("", "Search files"), rows[0].ID)
	assert.True(t, rows[len(rows)-1].Disabled)

	e.SetQuery("invoice")
	e.Flush()
	assert.Equal(t, "Billing", e.Snapshot().SelectedValue())
	_, ok := e.Activate()
	require.True(t, ok)
	assert.Equal(t, []string{"Billing"}, picked)

	e.Navigate(domain.NavigateFirst)
	assert.Equal(t, "Billing", e.Value())
}

func TestCatalogForceMount(t *testing.T) {
	path := writeFile(t, "palette.toml", `
[[catalog.items]]
value = "Apple"

[[catalog.items]]
value = "Help"
force_mount = true

[[catalog.groups]]
id = "recent"
heading = "Recent"
force_mount = true

[[catalog.groups.items]]
value = "Zebra"
`)
	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)
	require.True(t, cfg.Catalog.Items[1].ForceMount)
	require.True(t, cfg.Catalog.Groups[0].ForceMount)

	e := engine.New()
	cfg.Catalog.Register(e, nil)
	e.SetQuery("apple")
	e.Flush()

	snap := e.Snapshot()
	var got []string
	for _, row := range snap.Rows() {
		got = append(got, row.Value)
	}
	assert.Equal(t, []string{"Apple", "Help", "Zebra"}, got)
	assert.Equal(t, 1, snap.VisibleCount())
	assert.Equal(t, []string{"recent"}, snap.GroupOrder())
}
