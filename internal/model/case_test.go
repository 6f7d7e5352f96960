package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseStatusValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, CaseStatus("draft").Valid())
	assert.False(t, CaseStatus("Archived").Valid())
	assert.False(t, CaseStatus("").Valid())
	assert.Equal(t, "Draft, Submitted, Approved, Closed, Rejected", StatusNames())
}

func TestStatusCountsAdd(t *testing.T) {
	var c StatusCounts
	c.Add(StatusDraft, 3)
	c.Add(StatusRejected, 1)
	c.Add(CaseStatus("Unknown"), 2)

	assert.Equal(t, 6, c.Total)
	assert.Equal(t, 3, c.Draft)
	assert.Equal(t, 1, c.Rejected)
	assert.Zero(t, c.Approved)
}

func TestDocumentStoragePath(t *testing.T) {
	remote := "CDC-PR-Cases/CDC-PR-2026-00001/quote.pdf"
	local := "/srv/storage/CDC-PR-2026-00001/quote.pdf"

	d := Document{RemotePath: &remote}
	assert.Equal(t, remote, d.StoragePath())
	assert.Equal(t, "remote", d.Backend())

	d = Document{LocalPath: &local}
	assert.Equal(t, local, d.StoragePath())
	assert.Equal(t, "local", d.Backend())

	assert.Equal(t, DocTypeMain, DocType("main"))
	assert.True(t, DocTypeAttachment.Valid())
	assert.False(t, DocType("cover").Valid())
}
