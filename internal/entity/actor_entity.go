package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActorStatus string

const (
	ActorStatusActive    ActorStatus = "active"
	ActorStatusSuspended ActorStatus = "suspended"
)

// Actor is a registered user of the record desk. EmployeeID is the public
// identifier carried in tokens and conversation turns (e.g. "EMP042").
type Actor struct {
	Id           uuid.UUID
	EmployeeID   string
	Email        string
	FullName     string
	PasswordHash *string
	Role         string
	Department   string
	Status       ActorStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
