package handler

import (
	"errors"
	"net/http"

	"batepapo/internal/app/chat"
	"batepapo/internal/pkg/errs"
	"batepapo/internal/pkg/logx"
	"batepapo/internal/pkg/req"
	"batepapo/internal/pkg/resp"
)

type JoinInput struct {
	Name string `json:"name" validate:"required"`
}

// HandleListParticipants returns every registered participant.
func HandleListParticipants(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participants, err := deps.Chat.Registry.List(r.Context())
		if err != nil {
			respondInternal(w, r, err, "list_participants: store failure")
			return
		}

		resp.RespondSuccess(w, r, participants)
	}
}

// HandleJoin registers a new participant. Nothing is written when the body is invalid.
func HandleJoin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input JoinInput
		if customErr := req.BindAndValidate(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		_, err := deps.Chat.Registry.Join(r.Context(), input.Name)
		switch {
		case err == nil:
			resp.RespondStatus(w, r, http.StatusCreated)
		case errors.Is(err, chat.ErrNameTaken):
			logx.Warn("join: name already taken", "name", input.Name)
			resp.RespondError(w, r, errs.NewError(errs.ErrParticipantExists))
		case errors.Is(err, chat.ErrInvalidName):
			resp.RespondError(w, r, errs.NewValidationError([]string{`"name" is required`}))
		default:
			respondInternal(w, r, err, "join: store failure")
		}
	}
}
