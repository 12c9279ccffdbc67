package tags

import (
	"context"
	"os"

	"github.com/bogem/id3v2/v2"
	"github.com/mp3curate/mp3curate/pkg/errors"
)

const (
	frameAlbumArtist = "TPE2"
	frameTrack       = "TRCK"
	frameDisc        = "TPOS"

	// id3HeaderSize is the length of an ID3v2 tag header; shorter files
	// cannot carry a tag
	id3HeaderSize = 10
)

// ID3Store implements Store on ID3v2 tags
type ID3Store struct{}

// NewID3Store creates an ID3v2 backed store
func NewID3Store() *ID3Store {
	return &ID3Store{}
}

// Read parses the ID3v2 tag of path. Files without a tag yield empty Tags.
func (s *ID3Store) Read(ctx context.Context, path string) (Tags, error) {
	if err := ctx.Err(); err != nil {
		return Tags{}, err
	}

	tag, err := openTag(path)
	if err != nil {
		return Tags{}, errors.Wrapf(err, errors.ErrTagRead, "cannot read tags of %s", path).
			WithDetail("path", path)
	}
	defer func() { _ = tag.Close() }()

	t := Tags{
		Title:       tag.Title(),
		Artist:      tag.Artist(),
		Album:       tag.Album(),
		AlbumArtist: tag.GetTextFrame(frameAlbumArtist).Text,
		Genre:       tag.Genre(),
		Year:        tag.Year(),
	}

	if t.Track, err = ParseNumberPair(tag.GetTextFrame(frameTrack).Text); err != nil {
		t.Malformed = append(t.Malformed, "track")
	}
	if t.Disc, err = ParseNumberPair(tag.GetTextFrame(frameDisc).Text); err != nil {
		t.Malformed = append(t.Malformed, "disc")
	}
	return t, nil
}

// Write replaces the managed frames of path's tag and saves it
func (s *ID3Store) Write(ctx context.Context, path string, t Tags) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tag, err := openTag(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTagWrite, "cannot open tags of %s", path).
			WithDetail("path", path)
	}
	defer func() { _ = tag.Close() }()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(t.Title)
	tag.SetArtist(t.Artist)
	tag.SetAlbum(t.Album)
	tag.SetGenre(t.Genre)
	tag.SetYear(t.Year)
	setText(tag, frameAlbumArtist, t.AlbumArtist)
	setText(tag, frameTrack, t.Track.String())
	setText(tag, frameDisc, t.Disc.String())

	if err := tag.Save(); err != nil {
		return errors.Wrapf(err, errors.ErrTagWrite, "cannot save tags of %s", path).
			WithDetail("path", path)
	}
	return nil
}

// openTag opens path's tag. Files too short for a tag header are opened
// without parsing and behave as untagged.
func openTag(path string) (*id3v2.Tag, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return id3v2.Open(path, id3v2.Options{Parse: info.Size() >= id3HeaderSize})
}

func setText(tag *id3v2.Tag, id, text string) {
	tag.DeleteFrames(id)
	if text != "" {
		tag.AddTextFrame(id, tag.DefaultEncoding(), text)
	}
}
