// Package response writes JSON bodies in the service's failure envelope.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
)

// MsgUnexpected is returned for any failure the service did not anticipate.
const MsgUnexpected = "An unexpected error occurred."

// JSON sends a JSON response.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Validation sends 400 with one entry per failed field rule.
func Validation(w http.ResponseWriter, f domain.ValidationFailed) {
	out := dto.ValidationFailureResponse{Errors: make([]dto.ValidationError, 0, len(f.Errors))}
	for _, e := range f.Errors {
		out.Errors = append(out.Errors, dto.ValidationError{PropertyName: e.PropertyName, Message: e.Message})
	}
	JSON(w, http.StatusBadRequest, out)
}

// Operation sends an OperationFailureResponse with the given messages.
func Operation(w http.ResponseWriter, status int, messages ...string) {
	out := dto.OperationFailureResponse{Errors: make([]dto.OperationError, 0, len(messages))}
	for _, m := range messages {
		out.Errors = append(out.Errors, dto.OperationError{Message: m})
	}
	JSON(w, status, out)
}
