package validators

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/brewthree/brewpos-backend/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeAndValidate decodes the request body into dst and runs struct
// validation. Unknown fields are rejected.
func DecodeAndValidate(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errors.Wrap(errors.CodeValidation, err, "decoding request body").
			WithDetails(map[string]any{"reason": "malformed JSON body"})
	}

	if err := validate.Struct(dst); err != nil {
		fieldErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.Wrap(errors.CodeValidation, err, "validating request body")
		}
		details := make(map[string]any, len(fieldErrors))
		for _, fe := range fieldErrors {
			details[fe.Field()] = fe.Tag()
		}
		return errors.New(errors.CodeValidation, "request body failed validation").
			WithDetails(details)
	}
	return nil
}
