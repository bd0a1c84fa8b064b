package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-match/internal/contact"
	"github.com/sells-group/investor-match/internal/table"
)

func TestMetadata_InsertionOrder(t *testing.T) {
	m := NewMetadata()
	m.SetScalar("Check Size", table.String("$1M"))
	m.SetScalar("Account Name", table.String("Acme"))
	m.SetContactCount(2)

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Check Size", entries[0].Key)
	assert.Equal(t, "Account Name", entries[1].Key)
	assert.Equal(t, KeyContactCount, entries[2].Key)
}

func TestMetadata_SetScalarOverwritesInPlace(t *testing.T) {
	m := NewMetadata()
	m.SetScalar("Stage", table.String("Seed"))
	m.SetScalar("Account Name", table.String("Acme"))
	m.SetScalar("Stage", table.String("Series A"))

	require.Equal(t, 2, m.Len())
	assert.Equal(t, "Stage", m.Entries()[0].Key)
	assert.Equal(t, "Series A", m.Text("Stage"))
}

func TestMetadata_MarshalJSON_Order(t *testing.T) {
	m := NewMetadata()
	m.SetScalar("Account Name", table.String("Acme"))
	m.SetScalar("Employees", table.Number(12))
	m.SetContactCount(1)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"Account Name":"Acme","Employees":12,"contact_count":1}`, string(data))
}

func TestMetadata_JSONRoundTrip(t *testing.T) {
	m := NewMetadata()
	m.SetScalar("Account Name", table.String("Acme Ventures"))
	m.SetScalar("Min Check", table.Number(250000))
	m.SetScalar("Active", table.Boolean(true))
	m.SetContacts([]contact.Contact{{
		Name:       "Jane Doe",
		Email:      "jane@acme.vc",
		Background: "Partner",
		Source:     contact.SourceContactFile,
		SourceFile: "Contacts",
	}})
	m.SetContactCount(1)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	restored := NewMetadata()
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, "Acme Ventures", restored.Text("Account Name"))
	assert.Equal(t, "250000", restored.Text("Min Check"))
	assert.Equal(t, "true", restored.Text("Active"))
	assert.Equal(t, 1, restored.ContactCount())

	contacts := restored.Contacts()
	require.Len(t, contacts, 1)
	assert.Equal(t, "Jane Doe", contacts[0].Name)
	assert.Equal(t, "jane@acme.vc", contacts[0].Email)
	assert.Equal(t, contact.SourceContactFile, contacts[0].Source)

	// insertion order survives the round trip
	keys := make([]string, 0, restored.Len())
	for _, e := range restored.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"Account Name", "Min Check", "Active", KeyContacts, KeyContactCount}, keys)
}
