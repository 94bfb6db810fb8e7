package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterTable() Table {
	return Table{
		Title:   "Student roster",
		Columns: []string{"Student No", "Name", "Addresses"},
		Rows: [][]string{
			{"S0001001", "Alice Johnson", "123 Main St, New York; 456 Oak Ave, Boston"},
			{"S0001002", "Bob \"Bobby\" Smith", "789 Pine Rd, Chicago"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(rosterTable())
	require.NoError(t, err)
	assert.Equal(t,
		"Student No,Name,Addresses\n"+
			"S0001001,Alice Johnson,\"123 Main St, New York; 456 Oak Ave, Boston\"\n"+
			"S0001002,\"Bob \"\"Bobby\"\" Smith\",\"789 Pine Rd, Chicago\"\n",
		string(out))
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	table := rosterTable()
	table.Rows = append(table.Rows, []string{"only one"})
	_, err := NewCSVExporter().Render(table)
	assert.EqualError(t, err, "csv row 2 has 1 cells, want 3")

	_, err = NewCSVExporter().Render(Table{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	exporter.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	out, err := exporter.Render(rosterTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFExporterEmptyRoster(t *testing.T) {
	table := rosterTable()
	table.Rows = nil
	out, err := NewPDFExporter().Render(table)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
