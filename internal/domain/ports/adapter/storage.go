package adapter

import "context"

// PersistRequest associates a rendered binary with its owning generation.
type PersistRequest struct {
	GenerationID string
	UserID       string
	ContractType string
	FileName     string
	ContentType  string
	Description  string
	Data         []byte
}

// ArtifactStore uploads the binary to a content-addressed location keyed by
// the generation id, writes the metadata record, and returns a retrievable
// download URL. Both steps must succeed; there is no compensating delete if
// the metadata write fails after a successful upload.
type ArtifactStore interface {
	Persist(ctx context.Context, req PersistRequest) (downloadURL string, err error)
	Remove(ctx context.Context, generationID, fileName string) error
}
