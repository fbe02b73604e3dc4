package artifacts

import (
	"context"
	"fmt"
	"sync"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	counts map[string]Counts
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{counts: make(map[string]Counts)}
}

func (r *MemoryRepo) CountsForAccount(ctx context.Context, accountID string) (Counts, error) {
	if err := ctx.Err(); err != nil {
		return Counts{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.counts[accountID], nil
}

func (r *MemoryRepo) Add(ctx context.Context, accountID, kind string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := r.counts[accountID]
	switch kind {
	case KindResume:
		counts.CompletedResumes++
	case KindDraft:
		counts.Drafts++
	case KindWizardSession:
		counts.WizardSessions++
	case KindInterviewSession:
		counts.InterviewSessions++
	case KindCoverLetter:
		counts.CoverLetters++
	case KindSectionOutput:
		counts.SectionOutputs++
	default:
		return fmt.Errorf("unknown artifact kind %q", kind)
	}
	r.counts[accountID] = counts
	return nil
}
