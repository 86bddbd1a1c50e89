package dtos

import "github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"

// AreaDTO is the create/update body for areas and locations.
type AreaDTO struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Radius      float64  `json:"radius" validate:"gt=0,lte=10000"`
	IsActive    bool     `json:"is_active"`
}

func (dto *AreaDTO) Validate() error {
	return firstError(check(dto))
}

func (dto *AreaDTO) Ok(tr *intl.Translator) (map[string]string, bool) {
	errs := check(dto)
	return messages(errs, tr), len(errs) == 0
}
