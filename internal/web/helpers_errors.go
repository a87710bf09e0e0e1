package web

import (
	"errors"

	"footmatch-app/internal/api"
	"footmatch-app/internal/auth"
	"footmatch-app/internal/lifecycle"
)

const genericErrorMessage = "Coś poszło nie tak. Spróbuj ponownie."

// errorMessage turns an action failure into the text shown to the user.
// Server-reported errors are shown verbatim; anything without a structured
// body gets the generic message.
func errorMessage(err error) string {
	if apiErr, ok := api.AsError(err); ok {
		if apiErr.Code == api.CodeUnknown || apiErr.Message == "" {
			return genericErrorMessage
		}
		return apiErr.Message
	}
	switch {
	case errors.Is(err, lifecycle.ErrMatchNotFound):
		return "Mecz nie został znaleziony"
	case errors.Is(err, lifecycle.ErrNotPermitted):
		return "Nie możesz wykonać tej akcji."
	case errors.Is(err, auth.ErrInvalidRole):
		return "Wybierz rolę: Gracz lub Organizator"
	}
	return genericErrorMessage
}
