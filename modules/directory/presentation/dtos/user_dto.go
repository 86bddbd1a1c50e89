package dtos

import "github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"

type UserDTO struct {
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Role         string `json:"role,omitempty"`
	DepartmentID int64  `json:"department_id,omitempty" validate:"omitempty,gt=0"`
	Phone        string `json:"phone,omitempty"`
	Password     string `json:"password,omitempty" validate:"omitempty,min=8"`
	IsActive     bool   `json:"is_active"`
}

func (dto *UserDTO) Validate() error {
	return firstError(check(dto))
}

func (dto *UserDTO) Ok(tr *intl.Translator) (map[string]string, bool) {
	errs := check(dto)
	return messages(errs, tr), len(errs) == 0
}
