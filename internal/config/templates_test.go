package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplates_Defaults(t *testing.T) {
	got, err := LoadTemplates("")
	require.NoError(t, err)

	assert.NotEmpty(t, got.Preface)
	assert.Contains(t, got.PrefacePeriod, "%s")
	assert.Equal(t, "本周分享", got.SharedSection)
	assert.Equal(t, "One More Thing", got.OneMoreThingSection)
	assert.NotEmpty(t, got.Copyright)
	assert.Contains(t, got.TitleFormat, "%d")
	assert.NotEmpty(t, got.DefaultIcon)

	// Template links survive the round trip.
	var foundLink bool
	for _, p := range got.Preface {
		for _, s := range p.Spans {
			if s.Link != "" {
				foundLink = true
			}
		}
	}
	assert.True(t, foundLink, "preface should contain at least one linked span")
}

func TestLoadTemplates_FileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	doc := "preface:\n  - spans:\n      - text: \"hi\"\nshared_section: \"Weekly\"\ntitle_format: \"No.%d %s\"\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	got, err := LoadTemplates(path)
	require.NoError(t, err)
	assert.Equal(t, "Weekly", got.SharedSection)
	require.Len(t, got.Preface, 1)
	assert.Equal(t, "hi", got.Preface[0].Spans[0].Text)
}

func TestLoadTemplates_MissingFile(t *testing.T) {
	_, err := LoadTemplates(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
