package checkin

import (
	"context"
	"encoding/json"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

type Type string

const (
	TypeCheckIn  Type = "check_in"
	TypeCheckOut Type = "check_out"
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeCheckIn, TypeCheckOut:
		return t, nil
	case "":
		return TypeCheckIn, nil
	}
	return "", serrors.Validation("checkin_type", "INVALID_CHECKIN_TYPE", "checkin type must be check_in or check_out", "Validation.CheckinType")
}

// Checkin is one row of the check-in list or history. The portal names the
// geofence either area_* or location_*; both decode into the Area fields.
type Checkin struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	UserName  string         `json:"user_name"`
	Type      Type           `json:"checkin_type"`
	Latitude  httpapi.Number `json:"latitude"`
	Longitude httpapi.Number `json:"longitude"`
	AreaID    *int64         `json:"area_id,omitempty"`
	AreaName  string         `json:"area_name"`
	Distance  httpapi.Number `json:"distance"`
	Note      string         `json:"note"`
	Photo     string         `json:"photo"`
	Status    string         `json:"status"`
	CreatedAt string         `json:"created_at"`
}

func (c *Checkin) UnmarshalJSON(b []byte) error {
	type plain Checkin
	aux := struct {
		*plain
		LocationID   *int64 `json:"location_id"`
		LocationName string `json:"location_name"`
		FullName     string `json:"user_full_name"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if c.AreaID == nil {
		c.AreaID = aux.LocationID
	}
	if c.AreaName == "" {
		c.AreaName = aux.LocationName
	}
	if aux.FullName != "" {
		c.UserName = aux.FullName
	}
	return nil
}

// Submission is the multipart body of one check-in.
type Submission struct {
	Latitude  float64
	Longitude float64
	Note      string
	Type      Type
	AreaID    *int64
	Photo     []byte
}

type ListParams struct {
	Page     int
	PageSize int
}

// Result is what the portal answers to a submission.
type Result struct {
	Message string
	Checkin Checkin
}

type Repository interface {
	Submit(ctx context.Context, s Submission) (Result, error)
	List(ctx context.Context, p ListParams) ([]Checkin, int, error)
	History(ctx context.Context, p ListParams) ([]Checkin, int, error)
}
