package service

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const maxAllocationProbes = 100

// ErrCaseNumberExhausted is returned when every probed sequence number is taken.
var ErrCaseNumberExhausted = errors.New("no free case number within probe limit")

type caseNumberStore interface {
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	ExistsByNumber(ctx context.Context, caseNumber string) (bool, error)
}

// CaseNumberAllocator hands out case numbers of the form PREFIX-YEAR-NNNNN.
// The sequence restarts each UTC year. Numbers are a best guess; the UNIQUE
// constraint on cases.case_number is what guarantees uniqueness.
type CaseNumberAllocator struct {
	repo   caseNumberStore
	prefix string
	now    func() time.Time
}

func NewCaseNumberAllocator(repo caseNumberStore, prefix string) *CaseNumberAllocator {
	return &CaseNumberAllocator{repo: repo, prefix: prefix, now: time.Now}
}

// FormatCaseNumber renders seq zero-padded to five digits; larger values widen.
func FormatCaseNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, seq)
}

// Next returns the first free number after the count of cases created this year.
func (a *CaseNumberAllocator) Next(ctx context.Context) (string, error) {
	now := a.now().UTC()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	count, err := a.repo.CountCreatedSince(ctx, yearStart)
	if err != nil {
		return "", fmt.Errorf("count cases this year: %w", err)
	}

	seq := count + 1
	for i := 0; i < maxAllocationProbes; i++ {
		number := FormatCaseNumber(a.prefix, now.Year(), seq)
		taken, err := a.repo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", fmt.Errorf("check case number: %w", err)
		}
		if !taken {
			return number, nil
		}
		seq++
	}
	return "", ErrCaseNumberExhausted
}
