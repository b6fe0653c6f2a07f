package model

import "time"

type RenderJobStatus string

const (
	RenderJobStatusQueued     RenderJobStatus = "queued"
	RenderJobStatusProcessing RenderJobStatus = "processing"
	RenderJobStatusCompleted  RenderJobStatus = "completed"
	RenderJobStatusFailed     RenderJobStatus = "failed"
)

// RenderJob is the durable, pollable handle for an asynchronous generation.
// Progress runs 0-100; Result is set only on completion, LastError only on
// failure. Polling is the sole observation mechanism.
type RenderJob struct {
	ID              string
	UserID          string
	ContractType    string
	Parameters      map[string]any
	Format          OutputFormat
	Status          RenderJobStatus
	Progress        int
	ProgressMessage string
	Result          *GenerationResult
	LastError       string
	CreatedAt       time.Time
	CompletedAt     *time.Time
}
