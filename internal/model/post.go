package model

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type Post struct {
	ID          string
	Text        string
	Handle      string
	PublishedAt time.Time
	FetchedAt   time.Time
	Status      string
}
