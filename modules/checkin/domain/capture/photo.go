package capture

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

const (
	DefaultMaxPhotoSize  int64 = 5 << 20
	DefaultMaxPhotoWidth       = 1280
	DefaultJPEGQuality         = 85
)

var (
	ErrPhotoRequired = serrors.NewError("PHOTO_REQUIRED", "a photo is required", "Validation.PhotoRequired").WithField("photo")
	ErrPhotoTooLarge = serrors.NewError("PHOTO_TOO_LARGE", "photo exceeds the size limit", "Validation.PhotoTooLarge").WithField("photo")
	ErrPhotoType     = serrors.NewError("PHOTO_TYPE", "photo must be jpeg, png or webp", "Validation.PhotoType").WithField("photo")
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// CheckPhoto rejects empty, oversized or non-image uploads by content, not
// by file name. It returns the detected mime type.
func CheckPhoto(data []byte, maxSize int64) (string, error) {
	if len(data) == 0 {
		return "", ErrPhotoRequired
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxPhotoSize
	}
	if int64(len(data)) > maxSize {
		return "", ErrPhotoTooLarge
	}
	mt := mimetype.Detect(data)
	for _, allowed := range allowedTypes {
		if mt.Is(allowed) {
			return allowed, nil
		}
	}
	return "", ErrPhotoType
}

func DecodePhoto(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, serrors.Validation("photo", "PHOTO_DECODE", err.Error(), "Validation.PhotoType")
	}
	return img, nil
}

// EncodeFrame draws frame onto an offscreen RGBA canvas no wider than
// maxWidth, keeping the aspect ratio, and encodes the canvas as JPEG.
func EncodeFrame(frame image.Image, maxWidth, quality int) ([]byte, error) {
	if frame == nil {
		return nil, ErrPhotoRequired
	}
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrPhotoRequired
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxPhotoWidth
	}
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	var canvas *image.RGBA
	if w > maxWidth {
		nh := h * maxWidth / w
		if nh < 1 {
			nh = 1
		}
		canvas = image.NewRGBA(image.Rect(0, 0, maxWidth, nh))
		xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), frame, b, xdraw.Src, nil)
	} else {
		canvas = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(canvas, canvas.Bounds(), frame, b.Min, draw.Src)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
