// Package tags reads and writes the metadata fields mp3curate cares about.
package tags

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mp3curate/mp3curate/pkg/errors"
)

// Field names a tag field, as used by the audit configuration
type Field string

const (
	FieldTitle       Field = "title"
	FieldArtist      Field = "artist"
	FieldAlbum       Field = "album"
	FieldAlbumArtist Field = "album_artist"
	FieldGenre       Field = "genre"
	FieldYear        Field = "year"
)

// NumberPair is a "count/total" value such as a track or disc number.
// Total is nil when the source only carried a count.
type NumberPair struct {
	Count int  `json:"count" yaml:"count"`
	Total *int `json:"total,omitempty" yaml:"total,omitempty"`
}

// IsZero reports whether no number was present
func (n NumberPair) IsZero() bool {
	return n.Count == 0 && n.Total == nil
}

// String renders the pair the way ID3 stores it
func (n NumberPair) String() string {
	if n.IsZero() {
		return ""
	}
	if n.Total == nil {
		return strconv.Itoa(n.Count)
	}
	return fmt.Sprintf("%d/%d", n.Count, *n.Total)
}

// ParseNumberPair parses "3" or "3/12". An empty string yields the zero pair.
func ParseNumberPair(s string) (NumberPair, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NumberPair{}, nil
	}

	countPart, totalPart, hasTotal := strings.Cut(s, "/")
	count, err := strconv.Atoi(strings.TrimSpace(countPart))
	if err != nil || count < 0 {
		return NumberPair{}, errors.Newf(errors.ErrInvalidInput, "malformed number %q", s)
	}
	pair := NumberPair{Count: count}
	if !hasTotal {
		return pair, nil
	}

	total, err := strconv.Atoi(strings.TrimSpace(totalPart))
	if err != nil || total < 0 {
		return NumberPair{}, errors.Newf(errors.ErrInvalidInput, "malformed number %q", s)
	}
	pair.Total = &total
	return pair, nil
}

// Tags holds the fields of one media file
type Tags struct {
	Title       string     `json:"title" yaml:"title"`
	Artist      string     `json:"artist" yaml:"artist"`
	Album       string     `json:"album" yaml:"album"`
	AlbumArtist string     `json:"albumArtist" yaml:"albumArtist"`
	Genre       string     `json:"genre" yaml:"genre"`
	Year        string     `json:"year" yaml:"year"`
	Track       NumberPair `json:"track" yaml:"track"`
	Disc        NumberPair `json:"disc" yaml:"disc"`
	// Malformed lists number fields whose raw value could not be parsed
	Malformed []string `json:"malformed,omitempty" yaml:"malformed,omitempty"`
}

// Get returns a text field by name
func (t Tags) Get(field Field) string {
	switch field {
	case FieldTitle:
		return t.Title
	case FieldArtist:
		return t.Artist
	case FieldAlbum:
		return t.Album
	case FieldAlbumArtist:
		return t.AlbumArtist
	case FieldGenre:
		return t.Genre
	case FieldYear:
		return t.Year
	}
	return ""
}

// Missing returns the required fields that are empty, in the given order
func (t Tags) Missing(required []Field) []Field {
	var missing []Field
	for _, f := range required {
		if strings.TrimSpace(t.Get(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Store reads and writes tags by path
type Store interface {
	Read(ctx context.Context, path string) (Tags, error)
	Write(ctx context.Context, path string, tags Tags) error
}
