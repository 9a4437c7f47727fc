package artwork

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/albumart-downloader/internal/model"
)

func TestTagger_WriteTagged(t *testing.T) {
	tagger := NewTagger()
	path := filepath.Join(t.TempDir(), "Test Album.jpg")

	require.NoError(t, tagger.WriteTagged(testJPEG(t, 16, 16), "ABCDEFGHIJKLMNOPQ", path))

	id, err := tagger.ReadIdentifier(path)
	require.NoError(t, err)
	assert.Equal(t, model.Identifier("ABCDEFGHIJKLMNOPQ"), id)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	info, err := Inspect(data)
	require.NoError(t, err, "tagged file must still be a valid image")
	assert.True(t, info.IsJPEG())
	assert.Equal(t, 16, info.Width)
}

func TestTagger_WriteTaggedOverwrites(t *testing.T) {
	tagger := NewTagger()
	path := filepath.Join(t.TempDir(), "Same Title.jpg")

	require.NoError(t, tagger.WriteTagged(testJPEG(t, 8, 8), "AAAAAAAAAAAAAAAAA", path))
	require.NoError(t, tagger.WriteTagged(testJPEG(t, 8, 8), "BBBBBBBBBBBBBBBBB", path))

	id, err := tagger.ReadIdentifier(path)
	require.NoError(t, err)
	assert.Equal(t, model.Identifier("BBBBBBBBBBBBBBBBB"), id)
}

func TestTagger_EmbedReplacesExistingIdentifier(t *testing.T) {
	tagger := NewTagger()

	first, err := tagger.Embed(testJPEG(t, 8, 8), "AAAAAAAAAAAAAAAAA")
	require.NoError(t, err)
	second, err := tagger.Embed(first, "BBBBBBBBBBBBBBBBB")
	require.NoError(t, err)

	id, err := tagger.Identifier(second)
	require.NoError(t, err)
	assert.Equal(t, model.Identifier("BBBBBBBBBBBBBBBBB"), id)
}

func TestTagger_EmbedNotJPEG(t *testing.T) {
	tagger := NewTagger()

	_, err := tagger.Embed([]byte("<html>not an image</html>"), "ABCDEFGHIJKLMNOPQ")
	assert.ErrorIs(t, err, ErrNotJPEG)

	_, err = tagger.Embed(testPNG(t, 8, 8), "ABCDEFGHIJKLMNOPQ")
	assert.ErrorIs(t, err, ErrNotJPEG)
}

func TestTagger_WriteTaggedFailureLeavesNoFile(t *testing.T) {
	tagger := NewTagger()
	dir := t.TempDir()
	path := filepath.Join(dir, "Broken.jpg")

	assert.Error(t, tagger.WriteTagged([]byte("garbage"), "ABCDEFGHIJKLMNOPQ", path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTagger_IdentifierUntagged(t *testing.T) {
	_, err := NewTagger().Identifier(testJPEG(t, 8, 8))
	assert.ErrorIs(t, err, ErrNoIdentifier)
}

func TestTagger_ScanExisting(t *testing.T) {
	tagger := NewTagger()
	dir := t.TempDir()

	require.NoError(t, tagger.WriteTagged(testJPEG(t, 8, 8), "AAAAAAAAAAAAAAAAA", filepath.Join(dir, "One.jpg")))
	require.NoError(t, tagger.WriteTagged(testJPEG(t, 8, 8), "BBBBBBBBBBBBBBBBB", filepath.Join(dir, "Two.jpg")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untagged.jpg"), testJPEG(t, 8, 8), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".5e1c3f4b-0000-4000-8000-000000000000.part"), []byte("partial"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	ids, err := tagger.ScanExisting(dir)

	assert.Equal(t, model.NewIdentifierSet("AAAAAAAAAAAAAAAAA", "BBBBBBBBBBBBBBBBB"), ids)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr), "skipped files should be reported, got %v", err)
	assert.Len(t, merr.Errors, 2)
}

func TestTagger_ScanExistingClean(t *testing.T) {
	tagger := NewTagger()
	dir := t.TempDir()
	require.NoError(t, tagger.WriteTagged(testJPEG(t, 8, 8), "AAAAAAAAAAAAAAAAA", filepath.Join(dir, "One.jpg")))

	ids, err := tagger.ScanExisting(dir)

	require.NoError(t, err)
	assert.True(t, ids.Contains("AAAAAAAAAAAAAAAAA"))
	assert.Equal(t, 1, ids.Len())
}

func TestTagger_ScanExistingMissingDir(t *testing.T) {
	ids, err := NewTagger().ScanExisting(filepath.Join(t.TempDir(), "album_arts"))

	require.NoError(t, err)
	assert.Equal(t, 0, ids.Len())
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		wantFormat string
		wantErr    bool
	}{
		{name: "jpeg", data: testJPEG(t, 20, 10), wantFormat: "jpeg"},
		{name: "png", data: testPNG(t, 20, 10), wantFormat: "png"},
		{name: "garbage", data: []byte("not an image"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Inspect(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, info.Format)
			assert.Equal(t, 20, info.Width)
			assert.Equal(t, 10, info.Height)
		})
	}
}
