package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryMarshal(t *testing.T) {
	t.Run("file entry", func(t *testing.T) {
		entry := NewFileEntry("intro.pdf", "notes/intro.pdf")

		data, err := json.Marshal(entry)
		require.NoError(t, err)

		var raw map[string]interface{}
		err = json.Unmarshal(data, &raw)
		require.NoError(t, err)

		assert.Equal(t, "file", raw["type"])
		assert.Equal(t, "intro.pdf", raw["name"])
		assert.Equal(t, "notes/intro.pdf", raw["path"])
		assert.Equal(t, "notes/intro.pdf", raw["url"])
		assert.NotContains(t, raw, "children", "file entries must not carry children")
	})

	t.Run("dir entry", func(t *testing.T) {
		entry := NewDirEntry("Chapter1", "notes/Chapter1", []Entry{
			NewFileEntry("a.txt", "notes/Chapter1/a.txt"),
		})

		data, err := json.Marshal(entry)
		require.NoError(t, err)

		var raw map[string]interface{}
		err = json.Unmarshal(data, &raw)
		require.NoError(t, err)

		assert.Equal(t, "dir", raw["type"])
		assert.NotContains(t, raw, "url", "dir entries must not carry a url")
		children, ok := raw["children"].([]interface{})
		require.True(t, ok)
		assert.Len(t, children, 1)
	})

	t.Run("empty dir keeps children key", func(t *testing.T) {
		entry := NewDirEntry("Empty", "notes/Empty", nil)

		data, err := json.Marshal(entry)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"children":[]`)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := json.Marshal(Entry{Type: "symlink", Name: "x"})
		assert.Error(t, err)
	})
}

func TestManifestMarshalOrder(t *testing.T) {
	m := Manifest{
		Metadata: Metadata{LastUpdated: "January 25, 2026"},
		Sections: []Section{
			{Name: "syllabus", Entries: []Entry{}},
			{Name: "notes", Entries: []Entry{NewFileEntry("intro.pdf", "notes/intro.pdf")}},
			{Name: "assignments", Entries: []Entry{}},
		},
	}

	data, err := m.MarshalIndent()
	require.NoError(t, err)

	out := string(data)
	metaIdx := strings.Index(out, `"metadata"`)
	syllabusIdx := strings.Index(out, `"syllabus"`)
	notesIdx := strings.Index(out, `"notes"`)
	assignmentsIdx := strings.Index(out, `"assignments"`)

	require.GreaterOrEqual(t, metaIdx, 0)
	assert.Less(t, metaIdx, syllabusIdx, "metadata must come first")
	assert.Less(t, syllabusIdx, notesIdx, "sections must keep configured order")
	assert.Less(t, notesIdx, assignmentsIdx, "sections must keep configured order")
}

func TestManifestRoundTrip(t *testing.T) {
	m := Manifest{
		Metadata: Metadata{LastUpdated: "March 3, 2026"},
		Sections: []Section{
			{Name: "syllabus", Entries: []Entry{
				NewFileEntry("syllabus.pdf", "syllabus/syllabus.pdf"),
			}},
			{Name: "notes", Entries: []Entry{
				NewDirEntry("Unit1", "notes/Unit1", []Entry{
					NewFileEntry("intro.pdf", "notes/Unit1/intro.pdf"),
				}),
				NewFileEntry("overview.txt", "notes/overview.txt"),
			}},
			{Name: "assignments", Entries: []Entry{}},
		},
	}

	data, err := m.MarshalIndent()
	require.NoError(t, err)

	var parsed Manifest
	err = json.Unmarshal(data, &parsed)
	require.NoError(t, err)

	assert.Equal(t, m, parsed, "manifest must survive a JSON round trip")
}

func TestManifestSectionLookup(t *testing.T) {
	m := Manifest{
		Sections: []Section{
			{Name: "notes", Entries: []Entry{NewFileEntry("a", "notes/a")}},
		},
	}

	assert.Len(t, m.Section("notes"), 1)
	assert.Nil(t, m.Section("missing"))
}
