package contact

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/investor-match/internal/extract"
	"github.com/sells-group/investor-match/internal/resolve"
	"github.com/sells-group/investor-match/internal/table"
)

// Structured contact tables carry these exact column names. They are
// consumed by the structured path and excluded from passthrough extras.
var structuredCols = []string{"First Name", "Last Name", "Email", "Title", "Company"}

// Map is an order-preserving mapping from normalized firm key to the
// contacts discovered for that firm. Insertion order of keys is kept so
// containment-fallback lookups are deterministic across runs.
type Map struct {
	keys  []string
	byKey map[string][]Contact
}

// NewMap returns an empty contact map.
func NewMap() *Map {
	return &Map{byKey: make(map[string][]Contact)}
}

// Add appends a contact under the given normalized firm key.
func (m *Map) Add(firmKey string, c Contact) {
	if _, ok := m.byKey[firmKey]; !ok {
		m.keys = append(m.keys, firmKey)
	}
	m.byKey[firmKey] = append(m.byKey[firmKey], c)
}

// Keys returns the firm keys in first-insertion order.
func (m *Map) Keys() []string { return m.keys }

// Len returns the number of firms with at least one contact.
func (m *Map) Len() int { return len(m.keys) }

// Lookup finds the contacts for a firm name. An exact normalized match
// always wins; only when none exists are the known keys scanned in
// insertion order for a substring containment match.
func (m *Map) Lookup(firmName string) []Contact {
	key := resolve.Normalize(firmName)
	if key == "" {
		return nil
	}
	if contacts, ok := m.byKey[key]; ok {
		return contacts
	}
	for _, known := range m.keys {
		if strings.Contains(key, known) || strings.Contains(known, key) {
			return m.byKey[known]
		}
	}
	return nil
}

// LoadTables reads contact tables from disk, skipping any file that is
// missing or unreadable so one bad source never sinks the run.
func LoadTables(paths []string) []*table.Table {
	tables := make([]*table.Table, 0, len(paths))
	for _, path := range paths {
		t, err := table.Read(path)
		if err != nil {
			zap.L().Warn("contact: skipping unreadable contact table",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}
		tables = append(tables, t)
	}
	return tables
}

// Aggregate merges all contact tables into a per-firm contact map.
// Tables with a structured schema (any of First Name/Last Name/Email)
// yield one contact per row; unstructured tables are mined from their
// notes column, with the whole row kept as an opaque contact when
// nothing can be extracted.
func Aggregate(tables []*table.Table) *Map {
	m := NewMap()
	for _, t := range tables {
		aggregateTable(m, t)
	}
	return m
}

func aggregateTable(m *Map, t *table.Table) {
	if len(t.Columns) == 0 {
		return
	}

	firmCol, _ := resolve.Column(t.Columns, resolve.FirmColumn)
	structured := t.HasColumn("First Name") || t.HasColumn("Last Name") || t.HasColumn("Email")
	notesCol, hasNotes := resolve.Column(t.Columns, resolve.NotesColumn)

	added := 0
	for _, row := range t.Rows {
		firmKey := rowFirmKey(row, firmCol)
		if firmKey == "" {
			continue
		}

		var contacts []Contact
		if structured {
			contacts = structuredContact(t, row)
		} else {
			contacts = unstructuredContacts(t, row, notesCol, hasNotes)
		}

		for _, c := range contacts {
			c.Source = SourceContactFile
			c.SourceFile = t.Name
			m.Add(firmKey, c)
			added++
		}
	}

	zap.L().Debug("contact: aggregated table",
		zap.String("table", t.Name),
		zap.Bool("structured", structured),
		zap.Int("contacts", added),
	)
}

// rowFirmKey resolves the normalized firm key for one row. A non-null
// "Company" cell overrides the table-level firm column.
func rowFirmKey(row table.Row, firmCol string) string {
	if row.Has("Company") {
		return resolve.Normalize(row.Get("Company"))
	}
	return resolve.Normalize(row.Get(firmCol))
}

// structuredContact builds a contact from explicit First Name/Last Name/
// Email/Title columns. Rows with neither a name nor an email are dropped.
// A malformed Email cell drops the address, not the contact.
func structuredContact(t *table.Table, row table.Row) []Contact {
	c := Contact{
		Name: strings.TrimSpace(strings.TrimSpace(row.Get("First Name")) + " " + strings.TrimSpace(row.Get("Last Name"))),
	}

	if email := strings.TrimSpace(row.Get("Email")); strings.Contains(email, "@") && extract.ValidEmail(email) {
		c.Email = email
	}
	c.Background = strings.TrimSpace(row.Get("Title"))

	if c.Name == "" && c.Email == "" {
		return nil
	}

	for _, col := range t.Columns {
		if isStructuredCol(col) || !row.Has(col) {
			continue
		}
		c.Extras = append(c.Extras, Field{Key: col, Value: row[col]})
	}
	return []Contact{c}
}

// unstructuredContacts mines the row's notes text. When extraction finds
// nothing, the entire row is kept as one opaque contact so no source row
// silently disappears.
func unstructuredContacts(t *table.Table, row table.Row, notesCol string, hasNotes bool) []Contact {
	if hasNotes && row.Has(notesCol) {
		notes := row.Get(notesCol)
		if mentions := extract.Contacts(notes); len(mentions) > 0 {
			contacts := make([]Contact, 0, len(mentions))
			for _, m := range mentions {
				contacts = append(contacts, Contact{
					Name:        m.Name,
					Email:       m.Email,
					Background:  m.Background,
					SourceNotes: notes,
				})
			}
			return contacts
		}
	}

	var c Contact
	for _, col := range t.Columns {
		if !row.Has(col) {
			continue
		}
		c.Extras = append(c.Extras, Field{Key: col, Value: row[col]})
	}
	if len(c.Extras) == 0 {
		return nil
	}
	return []Contact{c}
}

func isStructuredCol(col string) bool {
	for _, s := range structuredCols {
		if col == s {
			return true
		}
	}
	return false
}

// MergeMainFile appends note-mined main-file mentions to a firm's
// contact list, discarding any whose email is already present
// (case-insensitive) from the contact-file pass.
func MergeMainFile(contacts []Contact, mentions []extract.Mention) []Contact {
	seen := make(map[string]bool, len(contacts))
	for _, c := range contacts {
		if c.Email != "" {
			seen[strings.ToLower(c.Email)] = true
		}
	}

	for _, m := range mentions {
		key := strings.ToLower(m.Email)
		if seen[key] {
			continue
		}
		seen[key] = true
		contacts = append(contacts, Contact{
			Name:       m.Name,
			Email:      m.Email,
			Background: m.Background,
			Source:     SourceMainFile,
		})
	}
	return contacts
}
