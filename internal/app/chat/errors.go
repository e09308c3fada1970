package chat

import "errors"

var (
	// ErrInvalidName is returned when joining with an empty name.
	ErrInvalidName = errors.New("chat: name must not be empty")

	// ErrNameTaken is returned when joining with a name that is already registered.
	ErrNameTaken = errors.New("chat: name already taken")

	// ErrParticipantNotFound is returned when a heartbeat or removal names nobody.
	ErrParticipantNotFound = errors.New("chat: participant not found")

	// ErrInvalidMessage is returned when a posted message misses its recipient or text, or has a bad type.
	ErrInvalidMessage = errors.New("chat: invalid message")

	// ErrSenderUnknown is returned when a message is posted by a name that is not registered.
	ErrSenderUnknown = errors.New("chat: sender is not a participant")
)
