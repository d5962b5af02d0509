package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResumeDocument is a stored document.
type ResumeDocument struct {
	ID        uuid.UUID `json:"id"`
	Document  Document  `json:"document"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
