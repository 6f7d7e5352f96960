package model

import "time"

// DocType distinguishes the single main document of a case from its attachments.
type DocType string

const (
	DocTypeMain       DocType = "main"
	DocTypeAttachment DocType = "attachment"
)

// Valid reports whether t is main or attachment.
func (t DocType) Valid() bool {
	return t == DocTypeMain || t == DocTypeAttachment
}

// Document represents a file attached to a case.
// Exactly one of RemotePath and LocalPath is set, depending on which backend stored the file.
// Neither is exposed over JSON; URL is the public way to reach the file.
type Document struct {
	ID               int64     `json:"id"`
	CaseID           int64     `json:"case_id"`
	DocType          DocType   `json:"doc_type"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	MimeType         string    `json:"mime_type"`
	RemotePath       *string   `json:"-"`
	LocalPath        *string   `json:"-"`
	UploadedAt       time.Time `json:"uploaded_at"`
	Notes            string    `json:"notes"`
	URL              string    `json:"url,omitempty"`
	StorageBackend   string    `json:"storage_backend"`
}

// StoragePath returns whichever storage path is set.
func (d *Document) StoragePath() string {
	if d.RemotePath != nil {
		return *d.RemotePath
	}
	if d.LocalPath != nil {
		return *d.LocalPath
	}
	return ""
}

// Backend names the store holding the file: "remote" or "local".
func (d *Document) Backend() string {
	if d.RemotePath != nil {
		return "remote"
	}
	return "local"
}
