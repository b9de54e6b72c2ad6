// Package domain contains core concepts of the chat system.
// This file defines User entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "github.com/google/uuid"

// User is a registered chat participant. The ID is unique for the
// lifetime of the process; the display name is chosen by the client
// and is not required to be unique.
type User struct {
	ID   uuid.UUID
	Name string
}
