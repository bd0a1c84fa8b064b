package profile

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/investor-match/internal/contact"
	"github.com/sells-group/investor-match/internal/extract"
	"github.com/sells-group/investor-match/internal/resolve"
	"github.com/sells-group/investor-match/internal/table"
)

const contactSectionHeader = "=== CONTACT INFORMATION (from Contact Files) ==="

// BuildProfiles is the pipeline entry point: it aggregates the contact
// tables into a per-firm map, then builds one profile per master row.
// Rows are built concurrently and reassembled in row order, so the
// output is deterministic for fixed inputs. A nil master table is fatal;
// an empty contact map only means profiles carry no contact section.
func BuildProfiles(master *table.Table, contactTables []*table.Table) ([]Profile, error) {
	if master == nil {
		return nil, eris.New("profile: master table is required")
	}

	contacts := contact.Aggregate(contactTables)
	b := NewBuilder(master, contacts)
	profiles, err := b.Build()
	if err != nil {
		return nil, err
	}

	zap.L().Info("profile: built profiles",
		zap.Int("profiles", len(profiles)),
		zap.Int("firms_with_contacts", contacts.Len()),
	)
	return profiles, nil
}

// Builder combines master rows with an aggregated contact map.
type Builder struct {
	master   *table.Table
	contacts *contact.Map
	firmCol  string
	notesCol string
	hasNotes bool
}

// NewBuilder resolves the master table's firm and notes columns once and
// returns a builder for its rows.
func NewBuilder(master *table.Table, contacts *contact.Map) *Builder {
	firmCol, _ := resolve.Column(master.Columns, resolve.FirmColumn)
	notesCol, hasNotes := resolve.Column(master.Columns, resolve.NotesColumn)
	return &Builder{
		master:   master,
		contacts: contacts,
		firmCol:  firmCol,
		notesCol: notesCol,
		hasNotes: hasNotes,
	}
}

// Build produces one profile per master row, sharded across workers and
// returned in original row order.
func (b *Builder) Build() ([]Profile, error) {
	profiles := make([]Profile, len(b.master.Rows))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range b.master.Rows {
		i := i
		g.Go(func() error {
			profiles[i] = b.buildRow(i, b.master.Rows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "profile: build rows")
	}
	return profiles, nil
}

// buildRow flattens one master row and merges in its resolved contacts.
func (b *Builder) buildRow(idx int, row table.Row) Profile {
	meta := NewMetadata()
	var lines []string

	for _, col := range b.master.Columns {
		if !row.Has(col) {
			continue
		}
		meta.SetScalar(col, row[col])
		lines = append(lines, fmt.Sprintf("%s: %s", col, row.Get(col)))
	}

	contacts := b.rowContacts(row)
	if len(contacts) > 0 {
		sorted := contact.SortForProfile(contacts)
		lines = append(lines, renderContactSection(sorted)...)
		meta.SetContacts(sorted)
		meta.SetContactCount(countWithEmail(sorted))
	}

	return Profile{
		ID:   strconv.Itoa(idx),
		Text: strings.Join(lines, "\n"),
		Meta: meta,
	}
}

// rowContacts looks up the row's firm in the aggregated map, then merges
// in contacts mined from the row's own notes, deduplicated by email.
func (b *Builder) rowContacts(row table.Row) []contact.Contact {
	var contacts []contact.Contact
	if b.firmCol != "" && row.Has(b.firmCol) {
		// Copy: the map's slice is shared across rows that resolve to
		// the same firm and must not be appended to in place.
		contacts = append(contacts, b.contacts.Lookup(row.Get(b.firmCol))...)
	}

	if b.hasNotes && row.Has(b.notesCol) {
		mentions := extract.Contacts(row.Get(b.notesCol))
		contacts = contact.MergeMainFile(contacts, mentions)
	}
	return contacts
}

// renderContactSection renders the contact block appended to the profile
// text: an enumerated "Contact Person N" entry per email-bearing
// contact, or a placeholder when contact data exists only in notes.
func renderContactSection(sorted []contact.Contact) []string {
	lines := []string{"", contactSectionHeader}

	n := 0
	for _, c := range sorted {
		if !c.HasEmail() {
			continue
		}
		n++
		lines = append(lines, "", fmt.Sprintf("Contact Person %d:", n))
		if c.Name != "" {
			lines = append(lines, "  Name: "+c.Name)
		}
		lines = append(lines, "  Email: "+c.Email)
		if c.Background != "" {
			lines = append(lines, "  Background/Role: "+c.Background)
		}
		if c.Source == contact.SourceContactFile {
			source := c.SourceFile
			if source == "" {
				source = "Contact Files"
			}
			lines = append(lines, "  Source: "+source)
		}
	}

	if n == 0 {
		lines = append(lines, "", "(Contact information available in Notes field)")
	}
	return lines
}

func countWithEmail(contacts []contact.Contact) int {
	n := 0
	for _, c := range contacts {
		if c.HasEmail() {
			n++
		}
	}
	return n
}
