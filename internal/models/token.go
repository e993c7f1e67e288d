package models

import (
	"time"
)

// Identity embedded into every access token
type TokenPayload struct {
	TutorID int64  `json:"tutorId"`
	Email   string `json:"email"`
}

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}
