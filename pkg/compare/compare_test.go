package compare_test

import (
	"path/filepath"
	"testing"

	"github.com/mp3curate/mp3curate/pkg/compare"
	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/testutil"
	"github.com/mp3curate/mp3curate/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cafeNFC   = "Caf\u00e9.mp3"
	cafeNFD   = "Cafe\u0301.mp3"
	artistNFC = "Beyonc\u00e9"
	artistNFD = "Beyonce\u0301"
)

func TestKindFor(t *testing.T) {
	assert.Equal(t, types.KindFile, compare.KindFor("song.mp3"))
	assert.Equal(t, types.KindDirectory, compare.KindFor(artistNFC))
}

func TestFindVariants_BothForms(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.File(cafeNFC, "nfc")
	tree.File(cafeNFD, "nfd")
	tree.File("Other.mp3", "x")

	variants, err := compare.FindVariants(tree.FS, "/music", cafeNFC, types.KindFile)
	require.NoError(t, err)
	require.Len(t, variants, 2)

	byName := map[string]compare.Variant{}
	for _, v := range variants {
		byName[v.RawName] = v
	}
	assert.True(t, byName[cafeNFC].IsNFC)
	assert.False(t, byName[cafeNFD].IsNFC)
	assert.Equal(t, filepath.Join("/music", cafeNFD), byName[cafeNFD].Path)
}

func TestFindVariants_DecomposedQuery(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.File(cafeNFC, "nfc")

	variants, err := compare.FindVariants(tree.FS, "/music", cafeNFD, types.KindFile)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, cafeNFC, variants[0].RawName)
}

func TestFindVariants_KindMustMatch(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.Dir(artistNFD)
	tree.File(artistNFC, "a file without extension")

	variants, err := compare.FindVariants(tree.FS, "/music", artistNFC, types.KindDirectory)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, artistNFD, variants[0].RawName)
	assert.Equal(t, types.KindDirectory, variants[0].Kind)
	assert.False(t, variants[0].IsNFC)
}

func TestFindVariants_MissingDirectory(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	_, err := compare.FindVariants(tree.FS, "/music/nope", "a.mp3", types.KindFile)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirectoryNotFound))
}

func TestCompare_MissingDirectoryIsPerDirectory(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.File("a/"+cafeNFC, "x")
	tree.File("b/"+cafeNFD, "y")

	results := compare.Compare(tree.FS, cafeNFC, []string{"/music/a", "/music/missing", "/music/b"})
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	require.Len(t, results[0].Variants, 1)
	assert.True(t, results[0].Variants[0].IsNFC)

	assert.Error(t, results[1].Err)
	assert.NotEmpty(t, results[1].Error)
	assert.Empty(t, results[1].Variants)

	assert.NoError(t, results[2].Err)
	require.Len(t, results[2].Variants, 1)
	assert.False(t, results[2].Variants[0].IsNFC)
}
