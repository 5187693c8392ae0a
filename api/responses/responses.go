package responses

import (
	"encoding/json"
	"net/http"

	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/types"
)

// JSON writes a success envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, types.SuccessEnvelope{Success: true, Data: data})
}

// JSONWithMeta writes a success envelope with metadata, usually pagination.
func JSONWithMeta(w http.ResponseWriter, status int, data, meta any) {
	write(w, status, types.SuccessEnvelope{Success: true, Data: data, Meta: meta})
}

// Error maps err to its public shape. Unknown error types become a 500 with
// no internal detail leaked.
func Error(w http.ResponseWriter, err error) {
	typed := errors.As(err)
	if typed == nil {
		meta := errors.MetadataFor(errors.CodeInternal)
		write(w, meta.HTTPStatus, types.ErrorEnvelope{
			Success: false,
			Error: types.APIError{
				Code:    string(errors.CodeInternal),
				Message: meta.PublicMessage,
			},
		})
		return
	}

	meta := errors.MetadataFor(typed.Code())
	apiErr := types.APIError{
		Code:    string(typed.Code()),
		Message: meta.PublicMessage,
	}
	if meta.DetailsAllowed {
		apiErr.Details = typed.Details()
	}
	write(w, meta.HTTPStatus, types.ErrorEnvelope{Success: false, Error: apiErr})
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
