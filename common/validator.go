package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON names in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimals validate as their sign, so gt=0 means strictly positive at
	// any precision. A null decimal is treated as absent.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch d := field.Interface().(type) {
		case decimal.Decimal:
			return d.Sign()
		case decimal.NullDecimal:
			if !d.Valid {
				return nil
			}
			return d.Decimal.Sign()
		}
		return nil
	}, decimal.Decimal{}, decimal.NullDecimal{})

	return v
}

// ValidateAndDecode decodes the JSON request body into payload and validates it.
func ValidateAndDecode(r *http.Request, payload interface{}) *AppError {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(payload); err != nil {
		return NewAppError(http.StatusBadRequest, "Invalid request body", err)
	}

	if err := validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return NewAppError(http.StatusBadRequest, "Invalid request body", err)
		}
		return NewAppError(http.StatusBadRequest, validationMessage(validationErrors), err)
	}

	return nil
}

func validationMessage(errs validator.ValidationErrors) string {
	for _, fe := range errs {
		if fe.Tag() == "required" {
			return "Missing fields"
		}
	}

	fe := errs[0]
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
