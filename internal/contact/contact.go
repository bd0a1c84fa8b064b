// Package contact merges contact records from structured contact tables
// and note-mined mentions into a per-firm, deduplicated, source-
// prioritized map.
package contact

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/sells-group/investor-match/internal/table"
)

// Source identifies where a contact record came from. Contact-file
// records outrank main-file note extractions when both exist.
type Source string

const (
	SourceContactFile Source = "contact_files"
	SourceMainFile    Source = "main_file"
)

// Field is one passthrough key/value pair carried from a source row.
type Field struct {
	Key   string
	Value table.Value
}

// Contact is one person associated with an investor firm. All fields are
// optional except Source; a contact with neither name nor email is an
// opaque row kept only so unparseable source data does not vanish.
type Contact struct {
	Name        string
	Email       string
	Background  string
	Source      Source
	SourceFile  string
	SourceNotes string
	Extras      []Field
}

// HasEmail reports whether the contact carries an email address.
func (c Contact) HasEmail() bool { return c.Email != "" }

// MarshalJSON writes the contact as a flat JSON object with the
// downstream prompt layer's key names, extras last in source-row order.
func (c Contact) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	write := func(key string, val any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if c.Name != "" {
		if err := write("name", c.Name); err != nil {
			return nil, err
		}
	}
	if c.Email != "" {
		if err := write("email", c.Email); err != nil {
			return nil, err
		}
	}
	if c.Background != "" {
		if err := write("background", c.Background); err != nil {
			return nil, err
		}
	}
	if err := write("source", string(c.Source)); err != nil {
		return nil, err
	}
	if c.SourceFile != "" {
		if err := write("source_file", c.SourceFile); err != nil {
			return nil, err
		}
	}
	if c.SourceNotes != "" {
		if err := write("source_notes", c.SourceNotes); err != nil {
			return nil, err
		}
	}
	for _, f := range c.Extras {
		if err := write(f.Key, f.Value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SortForProfile orders a firm's contacts for profile assembly: all
// contact-file entries before main-file entries, ties broken by source
// file name, discovery order otherwise. Returns a new slice.
func SortForProfile(contacts []Contact) []Contact {
	sorted := make([]Contact, len(contacts))
	copy(sorted, contacts)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sourceRank(sorted[i].Source), sourceRank(sorted[j].Source)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].SourceFile < sorted[j].SourceFile
	})
	return sorted
}

func sourceRank(s Source) int {
	if s == SourceContactFile {
		return 0
	}
	return 1
}
