package handler

import (
	"errors"
	"net/http"

	"batepapo/internal/app/chat"
	"batepapo/internal/pkg/errs"
	"batepapo/internal/pkg/resp"
)

// HandleStatus refreshes the heartbeat of the caller named in the User header.
func HandleStatus(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := deps.Chat.Registry.Heartbeat(r.Context(), r.Header.Get(UserHeader))
		switch {
		case err == nil:
			resp.RespondStatus(w, r, http.StatusOK)
		case errors.Is(err, chat.ErrParticipantNotFound):
			resp.RespondError(w, r, errs.NewError(errs.ErrParticipantNotFound))
		default:
			respondInternal(w, r, err, "status: store failure")
		}
	}
}
