package models

import (
	"time"
)

type Tutor struct {
	ID           int64
	CreatedAt    time.Time
	Name         string
	Email        string
	PasswordHash string
}
