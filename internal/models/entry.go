package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry types as they appear in the generated JSON
const (
	EntryTypeFile = "file"
	EntryTypeDir  = "dir"
)

// Entry represents a single node in the generated file listing.
// A file entry carries a URL, a directory entry carries its children.
type Entry struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	URL      string  `json:"url,omitempty"`
	Children []Entry `json:"children,omitempty"`
}

// NewFileEntry creates a file entry. The url mirrors the path so the
// website can link to the file directly on both localhost and GitHub Pages.
func NewFileEntry(name, path string) Entry {
	return Entry{
		Type: EntryTypeFile,
		Name: name,
		Path: path,
		URL:  path,
	}
}

// NewDirEntry creates a directory entry with its recursive children.
func NewDirEntry(name, path string, children []Entry) Entry {
	if children == nil {
		children = []Entry{}
	}
	return Entry{
		Type:     EntryTypeDir,
		Name:     name,
		Path:     path,
		Children: children,
	}
}

// fileEntryJSON and dirEntryJSON pin down the exact key sets the website
// expects: files always carry "url" and never "children", directories
// always carry "children" (even when empty) and never "url".
type fileEntryJSON struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

type dirEntryJSON struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Children []Entry `json:"children"`
}

// MarshalJSON emits the entry in the shape matching its type.
func (e Entry) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EntryTypeFile:
		return json.Marshal(fileEntryJSON{
			Type: e.Type,
			Name: e.Name,
			Path: e.Path,
			URL:  e.URL,
		})
	case EntryTypeDir:
		children := e.Children
		if children == nil {
			children = []Entry{}
		}
		return json.Marshal(dirEntryJSON{
			Type:     e.Type,
			Name:     e.Name,
			Path:     e.Path,
			Children: children,
		})
	default:
		return nil, fmt.Errorf("unknown entry type: %q", e.Type)
	}
}

// Metadata holds the manifest metadata block.
type Metadata struct {
	LastUpdated string `json:"lastUpdated"`
}

// Section is one scanned top-level folder and its listing.
type Section struct {
	Name    string
	Entries []Entry
}

// Manifest is the complete generated document: a metadata block followed
// by one key per scanned section, in configured order.
type Manifest struct {
	Metadata Metadata
	Sections []Section
}

// Section returns the entries for the named section, or nil if absent.
func (m *Manifest) Section(name string) []Entry {
	for _, s := range m.Sections {
		if s.Name == name {
			return s.Entries
		}
	}
	return nil
}

// MarshalJSON writes the manifest with "metadata" first and the sections
// in their configured order. encoding/json would otherwise sort map keys
// alphabetically and reorder the document.
func (m Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"metadata":`)
	meta, err := json.Marshal(m.Metadata)
	if err != nil {
		return nil, err
	}
	buf.Write(meta)

	for _, s := range m.Sections {
		buf.WriteByte(',')
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		entries := s.Entries
		if entries == nil {
			entries = []Entry{}
		}
		val, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalIndent renders the manifest exactly as the generator writes it
// to disk: 2-space indentation, metadata first.
func (m Manifest) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// UnmarshalJSON parses a manifest while preserving section order, using a
// token stream instead of a map.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("manifest: expected JSON object, got %v", tok)
	}

	m.Sections = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("manifest: expected object key, got %v", keyTok)
		}

		if key == "metadata" {
			if err := dec.Decode(&m.Metadata); err != nil {
				return err
			}
			continue
		}

		var entries []Entry
		if err := dec.Decode(&entries); err != nil {
			return err
		}
		if entries == nil {
			entries = []Entry{}
		}
		m.Sections = append(m.Sections, Section{Name: key, Entries: entries})
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
