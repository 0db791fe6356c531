package correlate

import (
	"testing"

	"submitapi/internal/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelate_RequiredSlotWins(t *testing.T) {
	files := []File{
		{FieldName: "required_letter_request", Filename: "letter.pdf"},
	}
	// A metadata entry for the same filename must be ignored.
	lookup := map[string]metadata.Entry{
		"letter.pdf": {Filename: "letter.pdf", Category: "A", Label: "should not be used"},
	}

	res := Correlate(files, lookup, SlotsForKind("resumption"), "resumption")

	require.Len(t, res.Matches, 1)
	m := res.Matches[0]
	assert.Equal(t, "required", m.Category)
	assert.Equal(t, "Letter Request of the Contractor for Contract Time Resumption", m.Label)
	assert.Empty(t, res.Unmatched)
}

func TestCorrelate_MetadataLookup(t *testing.T) {
	lat, lon := 14.5, 121.0
	files := []File{{FieldName: "supporting_files", Filename: "x.jpg"}}
	lookup := map[string]metadata.Entry{
		"x.jpg": {
			Filename: "x.jpg",
			Category: "A",
			Title:    "Photos",
			Label:    "Site overview",
			Station:  "0+120",
			Lat:      &lat,
			Lon:      &lon,
		},
	}

	res := Correlate(files, lookup, nil, "resumption")

	require.Len(t, res.Matches, 1)
	m := res.Matches[0]
	assert.Equal(t, "A", m.Category)
	assert.Equal(t, "Photos", m.Title)
	assert.Equal(t, "Site overview", m.Label)
	assert.Equal(t, "0+120", m.Station)
	require.NotNil(t, m.Lat)
	assert.InDelta(t, 14.5, *m.Lat, 0.0001)
}

func TestCorrelate_FieldNameConvention(t *testing.T) {
	tests := []struct {
		field        string
		wantCategory string
		wantLabel    string
	}{
		{"original_network_diagram", "PERT_ORIGINAL", "Network Diagram"},
		{"original_bar-chart", "PERT_ORIGINAL", "Bar Chart"},
		{"revised_schedule", "PERT_REVISED", "Schedule"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			res := Correlate([]File{{FieldName: tt.field, Filename: "f.pdf"}}, nil, nil, "PERT_ORIGINAL")

			require.Len(t, res.Matches, 1)
			assert.Equal(t, tt.wantCategory, res.Matches[0].Category)
			assert.Equal(t, tt.wantLabel, res.Matches[0].Label)
		})
	}
}

func TestCorrelate_FallbackNeverDropsFiles(t *testing.T) {
	files := []File{{FieldName: "attachment_1", Filename: "mystery.bin"}}

	res := Correlate(files, nil, SlotsForKind("resumption"), "resumption")

	require.Len(t, res.Matches, 1)
	assert.Equal(t, "resumption", res.Matches[0].Category)
	assert.Equal(t, "mystery.bin", res.Matches[0].Label)
}

func TestCorrelate_UnmatchedMetadataReported(t *testing.T) {
	files := []File{{FieldName: "supporting_files", Filename: "present.jpg"}}
	lookup := map[string]metadata.Entry{
		"present.jpg": {Filename: "present.jpg", Category: "A"},
		"ghost.jpg":   {Filename: "ghost.jpg", Category: "A"},
		"absent.jpg":  {Filename: "absent.jpg", Category: "B"},
	}

	res := Correlate(files, lookup, nil, "resumption")

	assert.Len(t, res.Matches, 1)
	assert.Equal(t, []string{"absent.jpg", "ghost.jpg"}, res.Unmatched)
}

func TestSlotsForKind(t *testing.T) {
	assert.Len(t, SlotsForKind("resumption"), 3)
	assert.Nil(t, SlotsForKind("PERT_ORIGINAL"))
}
