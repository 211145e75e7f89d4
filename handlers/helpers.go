package handlers

import (
	"net/http"
	"strconv"

	"personalsite/apperr"

	"go.uber.org/zap"
)

// parseID reads the {id} path value. Anything that is not a positive
// integer cannot name a row, so it is reported as not found.
func parseID(r *http.Request, resource string) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &apperr.Error{Kind: apperr.KindNotFound, Message: resource + " " + raw + " not found"}
	}
	return id, nil
}

// writeError answers a failed operation with a terse plain-text message.
// failMsg is shown for persistence and unexpected errors.
func writeError(w http.ResponseWriter, log *zap.SugaredLogger, err error, failMsg string) {
	var status int
	var msg string

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status, msg = http.StatusBadRequest, apperr.Message(err)
	case apperr.KindNotFound:
		status, msg = http.StatusNotFound, apperr.Message(err)
	case apperr.KindEnrichment:
		status, msg = http.StatusBadGateway, "There was an issue looking up that card: "+apperr.Message(err)
	default:
		status, msg = http.StatusInternalServerError, failMsg
	}

	if status >= http.StatusInternalServerError {
		log.Errorw(failMsg, "error", err, "status", status)
	} else {
		log.Infow(failMsg, "error", err, "status", status)
	}
	http.Error(w, msg, status)
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func render(w http.ResponseWriter, log *zap.SugaredLogger, view *Renderer, name string, data any) {
	if err := view.Render(w, name, data); err != nil {
		log.Errorw("error rendering template", "view", name, "error", err)
		http.Error(w, "Error displaying page", http.StatusInternalServerError)
	}
}
