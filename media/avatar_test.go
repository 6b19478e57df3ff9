package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(t *testing.T, size int) (*AvatarProcessor, string) {
	t.Helper()
	baseDir := t.TempDir()
	store, err := NewLocalStorage(baseDir, map[AssetType]string{AssetTypeAvatar: "avatars"})
	require.NoError(t, err)
	return NewAvatarProcessor(store, "http://localhost:8080/api/media", size), baseDir
}

func tinyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 50), G: uint8(y * 50), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveImageCropsSquareAndReturnsBustedURL(t *testing.T) {
	processor, baseDir := newTestProcessor(t, 64)

	// a non-square source must come out as a centered square crop
	url, err := processor.SaveImage("TESTID01", bytes.NewReader(tinyPNG(t, 6, 4)))
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:8080/api/media/avatars/TESTID01.jpeg?t=")

	file, err := os.Open(filepath.Join(baseDir, "avatars", "TESTID01.jpeg"))
	require.NoError(t, err)
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
}

func TestSaveImageOverwritesPreviousAvatar(t *testing.T) {
	processor, baseDir := newTestProcessor(t, 32)

	_, err := processor.SaveImage("TESTID02", bytes.NewReader(tinyPNG(t, 4, 4)))
	require.NoError(t, err)
	_, err = processor.SaveImage("TESTID02", bytes.NewReader(tinyPNG(t, 8, 8)))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(baseDir, "avatars"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "re-upload must replace the stored file, not add one")
}

func TestSaveDataURI(t *testing.T) {
	processor, _ := newTestProcessor(t, 32)

	encoded := base64.StdEncoding.EncodeToString(tinyPNG(t, 4, 4))
	url, err := processor.SaveDataURI("TESTID03", "data:image/png;base64,"+encoded)
	require.NoError(t, err)
	assert.Contains(t, url, "TESTID03.jpeg")
}

func TestSaveDataURIRejectsBadInput(t *testing.T) {
	processor, _ := newTestProcessor(t, 32)

	_, err := processor.SaveDataURI("TESTID04", "https://example.com/picture.png")
	assert.Error(t, err)

	_, err = processor.SaveDataURI("TESTID04", "data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err)

	_, err = processor.SaveDataURI("TESTID04", "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("not an image")))
	assert.Error(t, err)
}

func TestRemoveDeletesStoredAvatar(t *testing.T) {
	processor, baseDir := newTestProcessor(t, 32)

	_, err := processor.SaveImage("TESTID05", bytes.NewReader(tinyPNG(t, 4, 4)))
	require.NoError(t, err)
	avatarPath := filepath.Join(baseDir, "avatars", "TESTID05.jpeg")
	_, err = os.Stat(avatarPath)
	require.NoError(t, err)

	processor.Remove("TESTID05")
	_, err = os.Stat(avatarPath)
	assert.True(t, os.IsNotExist(err))

	// removing an avatar that never existed must not panic or error
	processor.Remove("NEVERHAD")
}
