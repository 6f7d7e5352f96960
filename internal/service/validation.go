package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"caseapi/internal/apperr"
)

// validationError turns validator failures into an apperr with a readable message
// naming the first offending field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Wrap(err, apperr.ErrValidation.Code, apperr.ErrValidation.Status, "invalid payload")
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "case_status":
		return apperr.WithCause(invalidStatusError().(*apperr.Error), err)
	case "max":
		return apperr.Wrap(err, apperr.ErrValidation.Code, apperr.ErrValidation.Status,
			fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	case "gte":
		return apperr.Wrap(err, apperr.ErrValidation.Code, apperr.ErrValidation.Status,
			fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param()))
	default:
		return apperr.Wrap(err, apperr.ErrValidation.Code, apperr.ErrValidation.Status,
			fmt.Sprintf("%s is invalid", field))
	}
}

// jsonFieldName reports fields by their JSON name.
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
