package area

import "github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"

// Area is a named geofence: a center and a radius in meters.
type Area struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Latitude    httpapi.Number `json:"latitude"`
	Longitude   httpapi.Number `json:"longitude"`
	Radius      httpapi.Number `json:"radius"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   string         `json:"created_at"`
}
