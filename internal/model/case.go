package model

import (
	"strings"
	"time"
)

// CaseStatus is a stage in a procurement case's lifecycle.
type CaseStatus string

const (
	StatusDraft     CaseStatus = "Draft"
	StatusSubmitted CaseStatus = "Submitted"
	StatusApproved  CaseStatus = "Approved"
	StatusClosed    CaseStatus = "Closed"
	StatusRejected  CaseStatus = "Rejected"
)

// Statuses lists every recognised status in display order.
var Statuses = []CaseStatus{StatusDraft, StatusSubmitted, StatusApproved, StatusClosed, StatusRejected}

// Valid reports whether s is one of the recognised statuses. Matching is exact.
func (s CaseStatus) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// StatusNames returns the statuses joined for error messages.
func StatusNames() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Case is one procurement request tracked through its lifecycle.
// DocumentCount and MainDocumentExists are computed on read.
type Case struct {
	ID                 int64      `json:"id"`
	CaseNumber         string     `json:"case_number"`
	Title              string     `json:"title"`
	CurrentStatus      CaseStatus `json:"current_status"`
	StorageFolderPath  string     `json:"storage_folder_path"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Notes              string     `json:"notes"`
	DocumentCount      int        `json:"document_count"`
	MainDocumentExists bool       `json:"main_document_exists"`
}

// CaseDetail is a case with its documents and status history (newest first).
type CaseDetail struct {
	Case
	Documents     []Document      `json:"documents"`
	StatusHistory []StatusHistory `json:"status_history"`
}

// StatusHistory is one append-only audit row. OldStatus is nil for the creation entry.
type StatusHistory struct {
	ID        int64       `json:"id"`
	CaseID    int64       `json:"case_id"`
	OldStatus *CaseStatus `json:"old_status"`
	NewStatus CaseStatus  `json:"new_status"`
	ChangedAt time.Time   `json:"changed_at"`
	ChangedBy *string     `json:"changed_by"`
	Notes     string      `json:"notes"`
}

// StatusCounts holds the dashboard statistics.
type StatusCounts struct {
	Total     int `json:"total_cases"`
	Draft     int `json:"draft_cases"`
	Submitted int `json:"submitted_cases"`
	Approved  int `json:"approved_cases"`
	Closed    int `json:"closed_cases"`
	Rejected  int `json:"rejected_cases"`
}

// Add records n cases in status s.
func (c *StatusCounts) Add(s CaseStatus, n int) {
	c.Total += n
	switch s {
	case StatusDraft:
		c.Draft += n
	case StatusSubmitted:
		c.Submitted += n
	case StatusApproved:
		c.Approved += n
	case StatusClosed:
		c.Closed += n
	case StatusRejected:
		c.Rejected += n
	}
}
