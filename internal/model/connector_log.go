package model

import "time"

// Connector log status values.
const (
	LogStatusSuccess = "success"
	LogStatusError   = "error"
)

// ConnectorLog is one append-only audit record of an executed command.
type ConnectorLog struct {
	ID        int64     `json:"id" db:"id"`
	Command   string    `json:"command" db:"command"`
	Stdout    string    `json:"stdout" db:"stdout"`
	Stderr    string    `json:"stderr" db:"stderr"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
