package metadata

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Package metadata normalizes the supporting_files_metadata form field
// into a canonical list of per-file entries. Callers send one of three
// layouts; the shape is resolved exactly once here and nothing
// downstream re-inspects the raw payload.

// Shape identifies which accepted payload layout the caller used.
type Shape int

const (
	// ShapeEmpty means the blob was absent or unusable.
	ShapeEmpty Shape = iota
	// ShapeGroups means the blob was an array of groups.
	ShapeGroups
	// ShapeSingle means the blob was a single object with an items array.
	ShapeSingle
)

// Coordinate accepts a latitude/longitude sent as a JSON number, a
// numeric string, or anything else (treated as absent). It never fails.
type Coordinate struct {
	Value *float64
}

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		c.Value = &n
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			c.Value = &f
		}
		return nil
	}
	// null, objects, booleans: absent
	return nil
}

// Item describes one file inside a metadata group.
type Item struct {
	Filename string     `json:"filename"`
	Label    string     `json:"label"`
	Station  string     `json:"station"`
	Caption  string     `json:"caption"`
	Lat      Coordinate `json:"lat"`
	Lon      Coordinate `json:"lon"`
}

type rawGroup struct {
	Type  string `json:"type"`
	Mode  string `json:"mode"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Group is one canonical metadata group.
type Group struct {
	Category string
	Title    string
	Items    []Item
}

// Document is the normalized metadata payload.
type Document struct {
	Shape  Shape
	Groups []Group
	// Warning is set when a blob was present but could not be parsed.
	// A bad blob is recorded, not fatal: a batch may legitimately carry
	// no optional metadata.
	Warning string
}

// Entry is one flattened per-file metadata entry.
type Entry struct {
	Filename string
	Category string
	Title    string
	Label    string
	Station  string
	Caption  string
	Lat      *float64
	Lon      *float64
}

func (g rawGroup) category() string {
	if g.Mode != "" {
		return g.Mode
	}
	return g.Type
}

// Parse normalizes a metadata blob. It never returns an error: an
// empty, malformed, or unexpected payload yields a Document with
// ShapeEmpty (and a Warning when the blob was present but unusable).
func Parse(blob string) Document {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return Document{Shape: ShapeEmpty}
	}

	var groups []rawGroup
	if err := json.Unmarshal([]byte(blob), &groups); err == nil {
		doc := Document{Shape: ShapeGroups}
		for _, g := range groups {
			doc.Groups = append(doc.Groups, Group{Category: g.category(), Title: g.Title, Items: g.Items})
		}
		return doc
	}

	var single rawGroup
	if err := json.Unmarshal([]byte(blob), &single); err == nil {
		return Document{
			Shape:  ShapeSingle,
			Groups: []Group{{Category: single.category(), Title: single.Title, Items: single.Items}},
		}
	}

	return Document{Shape: ShapeEmpty, Warning: "invalid supporting_files_metadata JSON"}
}

// Lookup flattens the document into a filename-keyed map. When two
// entries name the same file, the last one wins; that tie-break is part
// of the contract, not an accident.
func (d Document) Lookup() map[string]Entry {
	out := make(map[string]Entry)
	for _, g := range d.Groups {
		for _, it := range g.Items {
			if it.Filename == "" {
				continue
			}
			out[it.Filename] = Entry{
				Filename: it.Filename,
				Category: g.Category,
				Title:    g.Title,
				Label:    it.Label,
				Station:  it.Station,
				Caption:  it.Caption,
				Lat:      it.Lat.Value,
				Lon:      it.Lon.Value,
			}
		}
	}
	return out
}
