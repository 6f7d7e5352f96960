package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"caseapi/internal/model"
	"caseapi/internal/repository"
)

// memDB is an in-memory record store enforcing the same uniqueness rules as the schema.
type memDB struct {
	mu      sync.Mutex
	cases   []model.Case
	docs    []model.Document
	history []model.StatusHistory
	nextID  int64
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) caseIndex(id int64) int {
	for i := range db.cases {
		if db.cases[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *memDB) withAggregates(c model.Case) model.Case {
	c.DocumentCount, c.MainDocumentExists = 0, false
	for _, d := range db.docs {
		if d.CaseID == c.ID {
			c.DocumentCount++
			if d.DocType == model.DocTypeMain {
				c.MainDocumentExists = true
			}
		}
	}
	return c
}

type memCases struct{ db *memDB }

func (r memCases) Create(_ context.Context, c *model.Case, initial *model.StatusHistory) (*model.Case, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.cases {
		if existing.CaseNumber == c.CaseNumber {
			return nil, repository.ErrDuplicateCaseNumber
		}
	}
	out := *c
	out.ID = r.db.id()
	r.db.cases = append(r.db.cases, out)

	h := *initial
	h.ID = r.db.id()
	h.CaseID = out.ID
	r.db.history = append(r.db.history, h)
	return &out, nil
}

func (r memCases) FindByID(_ context.Context, id int64) (*model.Case, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i := r.db.caseIndex(id)
	if i < 0 {
		return nil, sql.ErrNoRows
	}
	c := r.db.withAggregates(r.db.cases[i])
	return &c, nil
}

func (r memCases) List(_ context.Context, f repository.CaseFilter) (*repository.PageResult[model.Case], error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var matched []model.Case
	for _, c := range r.db.cases {
		if f.Status != "" && c.CurrentStatus != f.Status {
			continue
		}
		if term := strings.ToLower(f.Search); term != "" &&
			!strings.Contains(strings.ToLower(c.CaseNumber), term) &&
			!strings.Contains(strings.ToLower(c.Title), term) {
			continue
		}
		matched = append(matched, r.db.withAggregates(c))
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	total := len(matched)
	start := min(f.Offset, total)
	end := min(start+f.Limit, total)
	return &repository.PageResult[model.Case]{Items: matched[start:end], Total: total}, nil
}

func (r memCases) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for _, c := range r.db.cases {
		if !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r memCases) ExistsByNumber(_ context.Context, caseNumber string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.cases {
		if c.CaseNumber == caseNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r memCases) UpdateStatus(_ context.Context, change repository.StatusChange) (*repository.StatusChangeResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i := r.db.caseIndex(change.CaseID)
	if i < 0 {
		return nil, sql.ErrNoRows
	}
	old := r.db.cases[i].CurrentStatus
	if old == change.NewStatus {
		c := r.db.withAggregates(r.db.cases[i])
		return &repository.StatusChangeResult{Case: &c, OldStatus: old}, nil
	}
	prev := old
	r.db.history = append(r.db.history, model.StatusHistory{
		ID:        r.db.id(),
		CaseID:    change.CaseID,
		OldStatus: &prev,
		NewStatus: change.NewStatus,
		ChangedAt: change.ChangedAt,
		ChangedBy: change.ChangedBy,
		Notes:     change.Notes,
	})
	r.db.cases[i].CurrentStatus = change.NewStatus
	r.db.cases[i].UpdatedAt = change.ChangedAt
	c := r.db.withAggregates(r.db.cases[i])
	return &repository.StatusChangeResult{Case: &c, OldStatus: old, Changed: true}, nil
}

func (r memCases) CountByStatus(_ context.Context) (map[model.CaseStatus]int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[model.CaseStatus]int{}
	for _, c := range r.db.cases {
		out[c.CurrentStatus]++
	}
	return out, nil
}

type memDocs struct{ db *memDB }

func (r memDocs) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i := r.db.caseIndex(doc.CaseID)
	if i < 0 {
		return nil, sql.ErrNoRows
	}
	if doc.DocType == model.DocTypeMain {
		for _, d := range r.db.docs {
			if d.CaseID == doc.CaseID && d.DocType == model.DocTypeMain {
				return nil, repository.ErrDuplicateMainDocument
			}
		}
	}
	out := *doc
	out.ID = r.db.id()
	r.db.docs = append(r.db.docs, out)
	r.db.cases[i].UpdatedAt = doc.UploadedAt
	return &out, nil
}

func (r memDocs) HasMain(_ context.Context, caseID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, d := range r.db.docs {
		if d.CaseID == caseID && d.DocType == model.DocTypeMain {
			return true, nil
		}
	}
	return false, nil
}

func (r memDocs) ListByCase(_ context.Context, caseID int64) ([]model.Document, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Document
	for _, d := range r.db.docs {
		if d.CaseID == caseID {
			out = append(out, d)
		}
	}
	return out, nil
}

type memHistory struct{ db *memDB }

func (r memHistory) ListByCase(_ context.Context, caseID int64) ([]model.StatusHistory, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.StatusHistory
	for _, h := range r.db.history {
		if h.CaseID == caseID {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ChangedAt.Equal(out[j].ChangedAt) {
			return out[i].ChangedAt.After(out[j].ChangedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
