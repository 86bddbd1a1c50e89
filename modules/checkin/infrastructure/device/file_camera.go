// Package device provides the camera and locator used from a terminal: image
// files stand in for the camera and flags stand in for GPS.
package device

import (
	"context"
	"image"
	"os"
	"sync"

	"github.com/go-faster/errors"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/capture"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

var ErrStreamStopped = errors.New("camera stream stopped")

// FileCamera maps each facing mode to an image file. A facing mode with no
// file falls back to the other one.
type FileCamera struct {
	Paths   map[capture.Facing]string
	MaxSize int64
}

func NewFileCamera(front, back string, maxSize int64) *FileCamera {
	paths := map[capture.Facing]string{}
	if front != "" {
		paths[capture.FacingUser] = front
	}
	if back != "" {
		paths[capture.FacingEnvironment] = back
	}
	return &FileCamera{Paths: paths, MaxSize: maxSize}
}

func (c *FileCamera) Open(ctx context.Context, facing capture.Facing) (capture.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := c.Paths[facing]
	if path == "" {
		path = c.Paths[facing.Other()]
	}
	if path == "" {
		return nil, capture.ErrPhotoRequired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.Validation("photo", "PHOTO_READ", err.Error(), "Validation.PhotoRequired")
	}
	if _, err := capture.CheckPhoto(data, c.MaxSize); err != nil {
		return nil, err
	}
	img, err := capture.DecodePhoto(data)
	if err != nil {
		return nil, err
	}
	return &imageStream{img: img}, nil
}

type imageStream struct {
	mu      sync.Mutex
	img     image.Image
	stopped bool
}

func (s *imageStream) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, ErrStreamStopped
	}
	return s.img, nil
}

func (s *imageStream) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.img = nil
	s.mu.Unlock()
}
