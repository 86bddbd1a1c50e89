package device

import (
	"context"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/capture"
)

// StaticLocator reports a fixed position. A nil coordinate means no fix.
type StaticLocator struct {
	Latitude  *float64
	Longitude *float64
	Accuracy  float64
}

func (l StaticLocator) Locate(ctx context.Context) (capture.Fix, error) {
	if err := ctx.Err(); err != nil {
		return capture.Fix{}, err
	}
	if l.Latitude == nil || l.Longitude == nil {
		return capture.Fix{}, capture.ErrLocationRequired
	}
	fix := capture.Fix{Latitude: *l.Latitude, Longitude: *l.Longitude, Accuracy: l.Accuracy}
	if err := fix.Validate(); err != nil {
		return capture.Fix{}, err
	}
	return fix, nil
}
