/*
Package randx generates unique identifiers for stored records.
*/
package randx

import (
	"github.com/google/uuid"
)

// RecordID generates a UUID v4 string identifying a stored participant or message.
func RecordID() string {
	return uuid.New().String()
}
