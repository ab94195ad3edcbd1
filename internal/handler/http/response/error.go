package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/auth"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/payperiod"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/upload"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var collaboratorErr *statement.CollaboratorError

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound):
		BadRequest(w, "Refresh token cookie not found", nil)
	case errors.Is(err, auth.ErrAuthNotConfigured):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, payperiod.ErrPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, contractor.ErrContractorNotFound):
		NotFound(w, "Contractor not found")
	case errors.Is(err, statement.ErrStatementNotFound):
		NotFound(w, "Pay statement not found")
	case errors.Is(err, statement.ErrDraftNotFound):
		NotFound(w, "Draft not found")
	case errors.Is(err, upload.ErrFolderNotFound):
		NotFound(w, "Folder not found for contractor")

	// Statement domain errors
	case errors.Is(err, statement.ErrUnresolvedPeriod):
		ValidationError(w, map[string]string{"payment.pay_period_id": err.Error()})
	case errors.Is(err, statement.ErrPayeeNameRequired):
		ValidationError(w, map[string]string{"paid_to.name": err.Error()})
	case errors.Is(err, statement.ErrNothingToExport),
		errors.Is(err, statement.ErrUnsupportedFormat),
		errors.Is(err, statement.ErrUnsupportedPreset):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, statement.ErrInvalidTransition):
		Conflict(w, err.Error())

	// Upload errors
	case errors.Is(err, upload.ErrFileRequired),
		errors.Is(err, upload.ErrInvalidFileType),
		errors.Is(err, upload.ErrFileTooLarge),
		errors.Is(err, upload.ErrParentNotSharedDrive):
		BadRequest(w, err.Error(), nil)

	// Collaborator failures surface their message
	case errors.As(err, &collaboratorErr):
		BadGateway(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
