/*
Package model contains the records shared by the chat service and its store drivers.

A Participant is a registered display name with the time it was last seen. A Message is one entry
of the append-only chat log: a public message, a private message, or a status notice emitted when
somebody enters or leaves the room.
*/
package model

import "time"

// Broadcast is the recipient name that addresses everybody in the room.
const Broadcast = "Todos"

// MessageType classifies a Message.
type MessageType string

const (
	// TypeMessage is a public message posted by a participant.
	TypeMessage MessageType = "message"

	// TypePrivateMessage is addressed to one participant.
	TypePrivateMessage MessageType = "private_message"

	// TypeStatus is a system notice about someone entering or leaving.
	TypeStatus MessageType = "status"
)

const (
	// TextJoined is the status text appended when a participant joins.
	TextJoined = "entra na sala..."

	// TextLeft is the status text appended when a participant is evicted.
	TextLeft = "sai da sala..."
)

// TimeLayout renders a 12-hour hh:mm:ss clock with no AM/PM marker.
const TimeLayout = "03:04:05"

// Participant is a registered chat member.
type Participant struct {
	// ID is the store-assigned record identifier.
	ID string `json:"_id"`

	// Name is the unique, case-sensitive display name.
	Name string `json:"name"`

	// LastStatus is the last join or heartbeat, in milliseconds since the Unix epoch.
	LastStatus int64 `json:"lastStatus"`
}

// Message is one immutable entry of the chat log.
type Message struct {
	// ID is the store-assigned record identifier.
	ID string `json:"_id"`

	From string      `json:"from"`
	To   string      `json:"to"`
	Text string      `json:"text"`
	Type MessageType `json:"type"`

	// Time is the insertion wall-clock time formatted with TimeLayout.
	// It has no date and no AM/PM, so it cannot be used to sort messages.
	Time string `json:"time"`
}

// Millis converts t to milliseconds since the Unix epoch.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FormatTime renders t the way messages store their time.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// VisibleTo reports whether user may read m.
// Public messages, broadcasts (status notices included) and messages addressed to user are visible.
// A private message is not visible to its own sender unless the sender is also the recipient.
func (m Message) VisibleTo(user string) bool {
	return m.Type == TypeMessage || m.To == user || m.To == Broadcast
}
