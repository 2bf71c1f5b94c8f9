package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		Title:    "Monthly Attendance",
		Subtitle: "March 2024",
		Tables: []Table{
			{Caption: "fac-1 / Physics", Headers: []string{"Roll", "Name", "Present"}, Rows: [][]string{{"01", "Ana", "3"}, {"02", "Budi"}}},
			{Headers: []string{"Roll"}, Rows: [][]string{{"03"}}},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDocument())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Equal(t, []string{
		"fac-1 / Physics",
		"Roll,Name,Present",
		"01,Ana,3",
		"02,Budi,",
		"",
		"Roll",
		"03",
	}, lines)
}

func TestExportersRejectHeaderlessTables(t *testing.T) {
	doc := Document{Tables: []Table{{Rows: [][]string{{"x"}}}}}
	_, err := NewCSVExporter().Render(doc)
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(doc)
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFExporterRenderWideTable(t *testing.T) {
	headers := make([]string, 35)
	for i := range headers {
		headers[i] = "c"
	}
	out, err := NewPDFExporter().Render(Document{Tables: []Table{{Headers: headers, Rows: [][]string{{"1"}}}}})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
