package correlate

import (
	"sort"
	"strings"

	"submitapi/internal/metadata"
)

// Package correlate pairs each uploaded file with the metadata entry or
// required-slot definition that describes it. Required slots are fixed
// per submission kind and always win; everything else is matched by
// filename or derived from the upload field name.

// File is one raw uploaded file as seen by the correlator: the
// multipart field it arrived under and its original filename.
type File struct {
	FieldName string
	Filename  string
}

// RequiredSlot is a fixed upload field that always maps to a
// predetermined category and label, bypassing metadata correlation.
type RequiredSlot struct {
	Field    string
	Category string
	Label    string
}

// Match is the correlation outcome for one uploaded file.
type Match struct {
	File     File
	Category string
	Title    string
	Label    string
	Station  string
	Caption  string
	Lat      *float64
	Lon      *float64
}

// Result carries one Match per uploaded file (in input order) plus the
// filenames of metadata entries that matched no uploaded file. Those
// are reported so callers can warn; no attachment is ever created for a
// file that was never actually uploaded.
type Result struct {
	Matches   []Match
	Unmatched []string
}

// Required slots for resumption packages, as fixed by the intake form.
var resumptionSlots = []RequiredSlot{
	{Field: "required_letter_request", Category: "required", Label: "Letter Request of the Contractor for Contract Time Resumption"},
	{Field: "required_approved_suspension", Category: "required", Label: "Approved Suspension Order"},
	{Field: "required_certified_contract", Category: "required", Label: "Certified True Copy of Original Contract"},
}

// SlotsForKind returns the required-slot table for a submission kind.
// Schedule packages have none; their files are classified by the
// field-name prefix convention instead.
func SlotsForKind(kind string) []RequiredSlot {
	if kind == "resumption" {
		return resumptionSlots
	}
	return nil
}

// Field-name prefixes recognized for schedule package files.
const (
	prefixOriginal = "original_"
	prefixRevised  = "revised_"
)

// Correlate assigns a category and label to every uploaded file.
// Priority per file: required slot by field name, then metadata lookup
// by filename, then the field-name prefix convention, then a fallback
// of defaultCategory with the raw filename as label. Files are never
// dropped.
func Correlate(files []File, lookup map[string]metadata.Entry, slots []RequiredSlot, defaultCategory string) Result {
	slotByField := make(map[string]RequiredSlot, len(slots))
	for _, s := range slots {
		slotByField[s.Field] = s
	}

	res := Result{Matches: make([]Match, 0, len(files))}
	seen := make(map[string]bool, len(files))

	for _, f := range files {
		seen[f.Filename] = true

		if slot, ok := slotByField[f.FieldName]; ok {
			// Required slots never consult the metadata lookup.
			res.Matches = append(res.Matches, Match{
				File:     f,
				Category: slot.Category,
				Title:    slot.Label,
				Label:    slot.Label,
			})
			continue
		}

		if e, ok := lookup[f.Filename]; ok {
			res.Matches = append(res.Matches, Match{
				File:     f,
				Category: e.Category,
				Title:    e.Title,
				Label:    e.Label,
				Station:  e.Station,
				Caption:  e.Caption,
				Lat:      e.Lat,
				Lon:      e.Lon,
			})
			continue
		}

		if category, label, ok := fromFieldName(f.FieldName); ok {
			res.Matches = append(res.Matches, Match{File: f, Category: category, Label: label})
			continue
		}

		res.Matches = append(res.Matches, Match{File: f, Category: defaultCategory, Label: f.Filename})
	}

	for filename := range lookup {
		if !seen[filename] {
			res.Unmatched = append(res.Unmatched, filename)
		}
	}
	sort.Strings(res.Unmatched)

	return res
}

// fromFieldName applies the prefix convention: original_* and revised_*
// fields carry schedule documents, and the remainder of the field name
// is turned into a display label.
func fromFieldName(field string) (category, label string, ok bool) {
	if rest, found := strings.CutPrefix(field, prefixOriginal); found && rest != "" {
		return "PERT_ORIGINAL", humanize(rest), true
	}
	if rest, found := strings.CutPrefix(field, prefixRevised); found && rest != "" {
		return "PERT_REVISED", humanize(rest), true
	}
	return "", "", false
}

// humanize turns a field-name remainder like "network_diagram" into
// "Network Diagram".
func humanize(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
