package tags_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestParseNumberPair(t *testing.T) {
	tests := []struct {
		in      string
		want    tags.NumberPair
		wantErr bool
	}{
		{in: "", want: tags.NumberPair{}},
		{in: "3", want: tags.NumberPair{Count: 3}},
		{in: "3/12", want: tags.NumberPair{Count: 3, Total: intPtr(12)}},
		{in: " 07 / 10 ", want: tags.NumberPair{Count: 7, Total: intPtr(10)}},
		{in: "A", wantErr: true},
		{in: "3/", wantErr: true},
		{in: "/12", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := tags.ParseNumberPair(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberPair_String(t *testing.T) {
	assert.Equal(t, "", tags.NumberPair{}.String())
	assert.Equal(t, "3", tags.NumberPair{Count: 3}.String())
	assert.Equal(t, "3/12", tags.NumberPair{Count: 3, Total: intPtr(12)}.String())
}

func TestTags_Missing(t *testing.T) {
	tg := tags.Tags{Title: "Jóga", Artist: " ", Album: "Homogenic"}
	missing := tg.Missing([]tags.Field{tags.FieldTitle, tags.FieldArtist, tags.FieldAlbum, tags.FieldAlbumArtist})
	assert.Equal(t, []tags.Field{tags.FieldArtist, tags.FieldAlbumArtist}, missing)
}

// mpegFrame is an MPEG-1 Layer III frame header followed by padding
var mpegFrame = append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 28)...)

func TestID3Store_WriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, mpegFrame, 0644))

	store := tags.NewID3Store()
	want := tags.Tags{
		Title:       "Jóga",
		Artist:      "Björk",
		Album:       "Homogenic",
		AlbumArtist: "Björk",
		Genre:       "Electronic",
		Year:        "1997",
		Track:       tags.NumberPair{Count: 3, Total: intPtr(10)},
		Disc:        tags.NumberPair{Count: 1},
	}
	require.NoError(t, store.Write(context.Background(), path, want))

	got, err := store.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID3", string(data[:3]))
	assert.Equal(t, mpegFrame, data[len(data)-len(mpegFrame):], "audio must follow the tag unchanged")
}

func TestID3Store_ShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.mp3")
	require.NoError(t, os.WriteFile(path, []byte("frames"), 0644))
	store := tags.NewID3Store()

	got, err := store.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, tags.Tags{}, got)

	require.NoError(t, store.Write(context.Background(), path, tags.Tags{Title: "Hunter"}))
	got, err = store.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Hunter", got.Title)
}

func TestID3Store_UntaggedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0644))

	got, err := tags.NewID3Store().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, tags.Tags{}, got)
}

func TestID3Store_MissingFile(t *testing.T) {
	_, err := tags.NewID3Store().Read(context.Background(), filepath.Join(t.TempDir(), "none.mp3"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTagRead))
}

func TestID3Store_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tags.NewID3Store().Read(ctx, "/whatever.mp3")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	store := tags.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "/a.mp3", tags.Tags{Title: "A"}))
	got, err := store.Read(ctx, "/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)

	_, err = store.Read(ctx, "/b.mp3")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTagRead))
}
