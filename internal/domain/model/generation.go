package model

import (
	"regexp"
	"time"
)

type GenerationStatus string

const (
	GenerationStatusGenerating GenerationStatus = "generating"
	GenerationStatusCompleted  GenerationStatus = "completed"
	GenerationStatusError      GenerationStatus = "error"
)

// OutputFormat selects the binary artifact kind produced by the renderer.
type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatDocx OutputFormat = "docx"
)

func (f OutputFormat) Valid() bool {
	return f == FormatPDF || f == FormatDocx
}

func (f OutputFormat) Extension() string {
	return string(f)
}

func (f OutputFormat) ContentType() string {
	if f == FormatDocx {
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/pdf"
}

// GenerationRequest is the ephemeral per-call input to the orchestrator.
// ContractType must match a registry id; UserID comes from the authenticated
// caller, never from the request body.
type GenerationRequest struct {
	ContractType string         `json:"contractType"`
	Parameters   map[string]any `json:"parameters"`
	Format       OutputFormat   `json:"format,omitempty"`
	UserID       string         `json:"-"`
}

// GenerationRecord tracks one drafting run. Content keeps the drafted markup
// so the artifact can be re-rendered without another drafting call.
type GenerationRecord struct {
	ID           string           `json:"id"`
	UserID       string           `json:"-"`
	ContractType string           `json:"contractType"`
	Parameters   map[string]any   `json:"parameters"`
	Content      string           `json:"content,omitempty"`
	Status       GenerationStatus `json:"status"`
	Error        string           `json:"error,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// GenerationResult is what both the sync response and the async job result carry.
type GenerationResult struct {
	DownloadURL string `json:"downloadUrl"`
	DocumentID  string `json:"documentId"`
}

// RenderedArtifact is transient: only its storage location and record
// metadata survive the pipeline.
type RenderedArtifact struct {
	FileName    string
	ContentType string
	Data        []byte
}

// FooterFields feed the per-page PDF footer.
type FooterFields struct {
	SignerName    string
	SignerAddress string
	ContactInfo   string
}

var fileNameStrip = regexp.MustCompile(`[^A-Za-z0-9]`)

// ArtifactFileName builds `{sanitized-type-name}_{documentId}.{ext}`.
// Sanitization strips every character outside [A-Za-z0-9].
func ArtifactFileName(typeName, documentID string, format OutputFormat) string {
	return fileNameStrip.ReplaceAllString(typeName, "") + "_" + documentID + "." + format.Extension()
}
