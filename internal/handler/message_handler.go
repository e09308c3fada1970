package handler

import (
	"errors"
	"net/http"

	"batepapo/internal/app/chat"
	"batepapo/internal/app/model"
	"batepapo/internal/pkg/errs"
	"batepapo/internal/pkg/logx"
	"batepapo/internal/pkg/req"
	"batepapo/internal/pkg/resp"
)

type PostMessageInput struct {
	To   string `json:"to" validate:"required"`
	Text string `json:"text" validate:"required"`
	Type string `json:"type" validate:"required,oneof=message private_message"`
}

// HandleListMessages returns the messages visible to the caller named in the User header.
// The optional ?limit=N keeps only the newest N of them.
func HandleListMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := r.Header.Get(UserHeader)
		limit := chat.ParseLimit(r.URL.Query().Get("limit"))

		messages, err := deps.Chat.Log.ListVisible(r.Context(), user, limit)
		if err != nil {
			respondInternal(w, r, err, "list_messages: store failure")
			return
		}

		resp.RespondSuccess(w, r, messages)
	}
}

// HandlePostMessage appends a message written by the caller named in the User header.
func HandlePostMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input PostMessageInput
		if customErr := req.BindAndValidate(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		from := r.Header.Get(UserHeader)

		_, err := deps.Chat.Log.Post(r.Context(), from, input.To, input.Text, model.MessageType(input.Type))
		switch {
		case err == nil:
			resp.RespondStatus(w, r, http.StatusCreated)
		case errors.Is(err, chat.ErrSenderUnknown):
			logx.Warn("post_message: sender is not a participant", "from", from)
			resp.RespondError(w, r, errs.NewError(errs.ErrSenderUnknown))
		case errors.Is(err, chat.ErrInvalidMessage):
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
		default:
			respondInternal(w, r, err, "post_message: store failure")
		}
	}
}
