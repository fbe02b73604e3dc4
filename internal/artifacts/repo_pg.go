package artifacts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) CountsForAccount(ctx context.Context, accountID string) (Counts, error) {
	const query = `
SELECT kind, count(*)
FROM artifacts
WHERE account_id = $1
GROUP BY kind`
	rows, err := r.DB.QueryContext(ctx, query, accountID)
	if err != nil {
		return Counts{}, err
	}
	defer rows.Close()
	var counts Counts
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return Counts{}, err
		}
		switch kind {
		case KindResume:
			counts.CompletedResumes = n
		case KindDraft:
			counts.Drafts = n
		case KindWizardSession:
			counts.WizardSessions = n
		case KindInterviewSession:
			counts.InterviewSessions = n
		case KindCoverLetter:
			counts.CoverLetters = n
		case KindSectionOutput:
			counts.SectionOutputs = n
		}
	}
	return counts, rows.Err()
}

func (r *PGRepo) Add(ctx context.Context, accountID, kind string) error {
	if !ValidKind(kind) {
		return fmt.Errorf("unknown artifact kind %q", kind)
	}
	const query = `
INSERT INTO artifacts (id, account_id, kind, created_at)
VALUES ($1, $2, $3, now())`
	_, err := r.DB.ExecContext(ctx, query, uuid.NewString(), accountID, kind)
	return err
}
