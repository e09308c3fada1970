/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally within the server
and in responses sent to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Participant and Message Errors
const (
	// ErrParticipantExists indicates that the requested display name is already registered.
	ErrParticipantExists = 2001

	// ErrParticipantNotFound indicates that the named participant is not registered.
	ErrParticipantNotFound = 2002

	// ErrSenderUnknown indicates that a message was posted by a name that is not registered.
	ErrSenderUnknown = 2003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
