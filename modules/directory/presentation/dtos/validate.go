package dtos

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Field-specific messages win over the generic per-tag ones.
var fieldKeys = map[string]string{
	"latitude":  "Validation.Latitude",
	"longitude": "Validation.Longitude",
	"radius":    "Validation.Radius",
}

var tagKeys = map[string]string{
	"required": "Validation.Required",
	"email":    "Validation.Email",
}

func localeKey(fe validator.FieldError) string {
	if k, ok := fieldKeys[fe.Field()]; ok && fe.Tag() != "required" {
		return k
	}
	if k, ok := tagKeys[fe.Tag()]; ok {
		return k
	}
	return "Validation.Invalid"
}

// check validates dto and returns the failures sorted by field, each as a
// serrors validation error.
func check(dto any) []*serrors.BaseError {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*serrors.BaseError{{Kind: serrors.KindValidation, Code: "INVALID", Message: err.Error(), LocaleKey: "Validation.Invalid"}}
	}
	out := make([]*serrors.BaseError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &serrors.BaseError{
			Kind:      serrors.KindValidation,
			Code:      "INVALID_" + strings.ToUpper(fe.Field()),
			Message:   fe.Error(),
			LocaleKey: localeKey(fe),
			Field:     fe.Field(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func firstError(errs []*serrors.BaseError) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// messages renders per-field messages in the translator's language.
func messages(errs []*serrors.BaseError, tr *intl.Translator) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = tr.Error(e)
	}
	return out
}
