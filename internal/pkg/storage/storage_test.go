package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	err = store.Save(ctx, "photos/ab/one.jpg", strings.NewReader("payload"))
	require.NoError(t, err)

	rc, err := store.Get(ctx, "photos/ab/one.jpg")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestLocalStorageGetMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "photos/zz/missing.jpg")
	assert.Error(t, err)
}

func TestLocalStorageDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "photos/ab/one.jpg", strings.NewReader("payload")))
	require.NoError(t, store.Delete(ctx, "photos/ab/one.jpg"))

	_, err = store.Get(ctx, "photos/ab/one.jpg")
	assert.Error(t, err)

	assert.NoError(t, store.Delete(ctx, "photos/ab/one.jpg"), "deleting a missing blob is fine")
}

func testImage(t *testing.T, w, h int) io.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestMakeThumbnailFitsBounds(t *testing.T) {
	out, err := MakeThumbnail(testImage(t, 1600, 900), 320, 200)
	require.NoError(t, err)

	thumb, format, err := image.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	b := thumb.Bounds()
	assert.LessOrEqual(t, b.Dx(), 320)
	assert.LessOrEqual(t, b.Dy(), 200)
	// Aspect ratio preserved: 16:9 fit into 320x200 lands on 320x180.
	assert.Equal(t, 320, b.Dx())
	assert.Equal(t, 180, b.Dy())
}

func TestMakeThumbnailRejectsGarbage(t *testing.T) {
	_, err := MakeThumbnail(strings.NewReader("not an image"), 100, 100)
	assert.Error(t, err)
}
