// Package capture is the check-in capture state machine: a GPS branch and a
// camera branch that must both finish before the form can be submitted.
package capture

import (
	"context"
	"image"
	"sync"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

type LocationState string

const (
	LocationIdle     LocationState = "idle"
	LocationLocating LocationState = "locating"
	LocationLocated  LocationState = "located"
)

type CameraState string

const (
	CameraIdle     CameraState = "idle"
	CameraOpen     CameraState = "open"
	CameraCaptured CameraState = "captured"
)

// Facing is the preferred camera, named as media constraints name it.
type Facing string

const (
	FacingUser        Facing = "user"
	FacingEnvironment Facing = "environment"
)

func (f Facing) Other() Facing {
	if f == FacingUser {
		return FacingEnvironment
	}
	return FacingUser
}

type Fix struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

func (f Fix) Validate() error {
	if f.Latitude < -90 || f.Latitude > 90 {
		return serrors.Validation("latitude", "INVALID_LATITUDE", "latitude out of range", "Validation.Latitude")
	}
	if f.Longitude < -180 || f.Longitude > 180 {
		return serrors.Validation("longitude", "INVALID_LONGITUDE", "longitude out of range", "Validation.Longitude")
	}
	return nil
}

type Locator interface {
	Locate(ctx context.Context) (Fix, error)
}

// Stream is an open camera. Stop releases the device.
type Stream interface {
	Frame() (image.Image, error)
	Stop()
}

type Camera interface {
	Open(ctx context.Context, facing Facing) (Stream, error)
}

var (
	ErrLocationRequired = serrors.NewError("LOCATION_REQUIRED", "a GPS fix is required", "Validation.LocationRequired").WithField("location")
	ErrCameraNotOpen    = serrors.NewError("CAMERA_NOT_OPEN", "camera is not open", "Validation.PhotoRequired").WithField("photo")
	ErrLocating         = serrors.NewError("LOCATING", "a location request is already running", "Validation.LocationRequired").WithField("location")
)

type Options struct {
	MaxWidth int
	Quality  int
}

// State is a snapshot of the flow for rendering.
type State struct {
	Location  LocationState
	Camera    CameraState
	Facing    Facing
	Fix       Fix
	HasPhoto  bool
	CanSubmit bool
}

type Flow struct {
	camera  Camera
	locator Locator
	opts    Options

	mu       sync.Mutex
	location LocationState
	fix      Fix
	cam      CameraState
	facing   Facing
	stream   Stream
	photo    []byte
}

func NewFlow(camera Camera, locator Locator, opts Options) *Flow {
	return &Flow{
		camera:   camera,
		locator:  locator,
		opts:     opts,
		location: LocationIdle,
		cam:      CameraIdle,
		facing:   FacingUser,
	}
}

// Locate asks the locator for a fix. A failure or an out-of-range fix puts
// the location branch back to idle.
func (f *Flow) Locate(ctx context.Context) (Fix, error) {
	f.mu.Lock()
	if f.location == LocationLocating {
		f.mu.Unlock()
		return Fix{}, ErrLocating
	}
	f.location = LocationLocating
	f.mu.Unlock()

	fix, err := f.locator.Locate(ctx)
	if err == nil {
		err = fix.Validate()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.location = LocationIdle
		f.fix = Fix{}
		return Fix{}, err
	}
	f.location = LocationLocated
	f.fix = fix
	return fix, nil
}

// OpenCamera opens the camera facing facing, stopping any stream already
// open. A captured photo is discarded.
func (f *Flow) OpenCamera(ctx context.Context, facing Facing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open(ctx, facing)
}

func (f *Flow) open(ctx context.Context, facing Facing) error {
	f.stopStream()
	f.photo = nil
	f.cam = CameraIdle
	stream, err := f.camera.Open(ctx, facing)
	if err != nil {
		return err
	}
	f.stream = stream
	f.facing = facing
	f.cam = CameraOpen
	return nil
}

// Capture grabs a frame, encodes it and releases the stream.
func (f *Flow) Capture() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cam != CameraOpen || f.stream == nil {
		return nil, ErrCameraNotOpen
	}
	frame, err := f.stream.Frame()
	if err != nil {
		return nil, err
	}
	data, err := EncodeFrame(frame, f.opts.MaxWidth, f.opts.Quality)
	if err != nil {
		return nil, err
	}
	f.stopStream()
	f.photo = data
	f.cam = CameraCaptured
	return data, nil
}

// Retake drops the photo and reopens the camera with the same facing mode.
func (f *Flow) Retake(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open(ctx, f.facing)
}

func (f *Flow) SwitchCamera(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open(ctx, f.facing.Other())
}

// Close releases the camera. The fix and any captured photo are kept.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopStream()
	if f.cam == CameraOpen {
		f.cam = CameraIdle
	}
}

func (f *Flow) stopStream() {
	if f.stream != nil {
		f.stream.Stop()
		f.stream = nil
	}
}

func (f *Flow) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.location == LocationLocated && f.cam == CameraCaptured
}

// Ready returns the fix and photo, or the first missing piece as a
// validation error.
func (f *Flow) Ready() (Fix, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cam != CameraCaptured || len(f.photo) == 0 {
		return Fix{}, nil, ErrPhotoRequired
	}
	if f.location != LocationLocated {
		return Fix{}, nil, ErrLocationRequired
	}
	return f.fix, f.photo, nil
}

// Reset returns both branches to idle after a successful submission.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopStream()
	f.location = LocationIdle
	f.fix = Fix{}
	f.cam = CameraIdle
	f.photo = nil
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Location:  f.location,
		Camera:    f.cam,
		Facing:    f.facing,
		Fix:       f.fix,
		HasPhoto:  len(f.photo) > 0,
		CanSubmit: f.location == LocationLocated && f.cam == CameraCaptured,
	}
}
