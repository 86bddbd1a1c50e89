package device_test

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/capture"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/infrastructure/device"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
	return path
}

func TestFileCamera(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	front := writePNG(t, dir, "front.png", 40, 30)
	cam := device.NewFileCamera(front, "", 0)

	stream, err := cam.Open(context.Background(), capture.FacingEnvironment)
	require.NoError(t, err)
	frame, err := stream.Frame()
	require.NoError(t, err)
	require.Equal(t, 40, frame.Bounds().Dx())

	stream.Stop()
	_, err = stream.Frame()
	require.ErrorIs(t, err, device.ErrStreamStopped)
}

func TestFileCamera_RejectsBadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	text := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(text, []byte("không phải ảnh"), 0o600))

	_, err := device.NewFileCamera(text, "", 0).Open(context.Background(), capture.FacingUser)
	require.ErrorIs(t, err, capture.ErrPhotoType)

	big := writePNG(t, dir, "big.png", 64, 64)
	_, err = device.NewFileCamera(big, "", 16).Open(context.Background(), capture.FacingUser)
	require.ErrorIs(t, err, capture.ErrPhotoTooLarge)

	_, err = device.NewFileCamera("", "", 0).Open(context.Background(), capture.FacingUser)
	require.ErrorIs(t, err, capture.ErrPhotoRequired)

	_, err = device.NewFileCamera(filepath.Join(dir, "missing.jpg"), "", 0).Open(context.Background(), capture.FacingUser)
	require.True(t, serrors.IsValidation(err))
}

func TestStaticLocator(t *testing.T) {
	t.Parallel()

	lat, lng := 10.7769, 106.7009
	fix, err := device.StaticLocator{Latitude: &lat, Longitude: &lng}.Locate(context.Background())
	require.NoError(t, err)
	require.InDelta(t, lat, fix.Latitude, 1e-9)

	_, err = device.StaticLocator{}.Locate(context.Background())
	require.ErrorIs(t, err, capture.ErrLocationRequired)

	bad := 190.0
	_, err = device.StaticLocator{Latitude: &lat, Longitude: &bad}.Locate(context.Background())
	require.True(t, serrors.IsValidation(err))
}
