// Package profile assembles canonical per-investor documents from a
// master table row and its aggregated contacts: a flattened text
// rendering plus an order-preserving metadata mapping. Text is fully
// derived from metadata and rebuilding it is deterministic.
package profile

import (
	"bytes"
	"encoding/json"

	"github.com/sells-group/investor-match/internal/contact"
	"github.com/sells-group/investor-match/internal/table"
)

// Metadata key names consumed by the downstream prompt layer. These are
// contract names and must not be renamed.
const (
	KeyFirmName      = "Account Name"
	KeyFocusArea     = "Investor Focus Area"
	KeyInvestorType  = "Investor Type"
	KeyFundType      = "Fund Type"
	KeyCheckSize     = "Check Size"
	KeyStage         = "Stage"
	KeyGeography     = "Geographic Focus"
	KeyIndustry      = "Industry Focus"
	KeyThesis        = "Investment Thesis"
	KeyPortfolio     = "Portfolio Companies"
	KeyMinInvestment = "Minimum Investment"
	KeyMaxInvestment = "Maximum Investment"
	KeyContacts      = "contacts"
	KeyContactCount  = "contact_count"
)

// Entry is one metadata key/value pair. Exactly one of the value fields
// is set: Scalar for column values, Contacts for the contact list, Count
// for the email-bearing contact count.
type Entry struct {
	Key      string
	Scalar   *table.Value
	Contacts []contact.Contact
	Count    *int
}

// Metadata is an insertion-ordered mapping from key to tagged value.
type Metadata struct {
	entries []Entry
	index   map[string]int
}

// NewMetadata returns an empty metadata mapping.
func NewMetadata() *Metadata {
	return &Metadata{index: make(map[string]int)}
}

func (m *Metadata) add(e Entry) {
	if i, ok := m.index[e.Key]; ok {
		m.entries[i] = e
		return
	}
	m.index[e.Key] = len(m.entries)
	m.entries = append(m.entries, e)
}

// SetScalar stores a column value under its original column name.
func (m *Metadata) SetScalar(key string, v table.Value) {
	m.add(Entry{Key: key, Scalar: &v})
}

// SetContacts stores the sorted contact list.
func (m *Metadata) SetContacts(contacts []contact.Contact) {
	m.add(Entry{Key: KeyContacts, Contacts: contacts})
}

// SetContactCount stores the count of contacts carrying an email.
func (m *Metadata) SetContactCount(n int) {
	m.add(Entry{Key: KeyContactCount, Count: &n})
}

// Entries returns the entries in insertion order.
func (m *Metadata) Entries() []Entry { return m.entries }

// Len returns the number of entries.
func (m *Metadata) Len() int { return len(m.entries) }

// Has reports whether the key is present.
func (m *Metadata) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Text returns the display form of a scalar entry, or "" when the key is
// absent or non-scalar.
func (m *Metadata) Text(key string) string {
	i, ok := m.index[key]
	if !ok || m.entries[i].Scalar == nil {
		return ""
	}
	return m.entries[i].Scalar.Text()
}

// Contacts returns the stored contact list, or nil.
func (m *Metadata) Contacts() []contact.Contact {
	i, ok := m.index[KeyContacts]
	if !ok {
		return nil
	}
	return m.entries[i].Contacts
}

// ContactCount returns the stored email-bearing contact count.
func (m *Metadata) ContactCount() int {
	i, ok := m.index[KeyContactCount]
	if !ok || m.entries[i].Count == nil {
		return 0
	}
	return *m.entries[i].Count
}

// MarshalJSON writes the metadata as a JSON object in insertion order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		var v []byte
		switch {
		case e.Scalar != nil:
			v, err = json.Marshal(*e.Scalar)
		case e.Count != nil:
			v, err = json.Marshal(*e.Count)
		default:
			v, err = json.Marshal(e.Contacts)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a metadata object, preserving key order.
// Contact entries come back as generic extras since the flat JSON form
// does not distinguish mined fields from passthrough ones; scalar and
// count entries round-trip exactly.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		switch key {
		case KeyContacts:
			var contacts []contactJSON
			if err := dec.Decode(&contacts); err != nil {
				return err
			}
			restored := make([]contact.Contact, len(contacts))
			for i, c := range contacts {
				restored[i] = c.toContact()
			}
			m.SetContacts(restored)
		case KeyContactCount:
			var n int
			if err := dec.Decode(&n); err != nil {
				return err
			}
			m.SetContactCount(n)
		default:
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return err
			}
			v, err := decodeScalar(raw)
			if err != nil {
				return err
			}
			m.SetScalar(key, v)
		}
	}
	_, err := dec.Token() // closing brace
	return err
}

// contactJSON is the wire form of a contact for round-tripping.
type contactJSON struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Background string `json:"background"`
	Source     string `json:"source"`
	SourceFile string `json:"source_file"`
}

func (c contactJSON) toContact() contact.Contact {
	return contact.Contact{
		Name:       c.Name,
		Email:      c.Email,
		Background: c.Background,
		Source:     contact.Source(c.Source),
		SourceFile: c.SourceFile,
	}
}

func decodeScalar(raw json.RawMessage) (table.Value, error) {
	var any interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&any); err != nil {
		return table.Value{}, err
	}
	switch v := any.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return table.Value{}, err
		}
		return table.Number(f), nil
	case bool:
		return table.Boolean(v), nil
	case string:
		return table.String(v), nil
	default:
		// Nested structures are not produced by the builder; keep the
		// raw text so nothing is lost.
		return table.String(string(raw)), nil
	}
}

// Profile is the canonical per-investor document: a stable row id, the
// flattened text rendering, and the ordered metadata it derives from.
type Profile struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	Meta *Metadata `json:"metadata"`
}
