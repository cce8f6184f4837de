package essays

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-marking/internal/apperr"
)

const essayColumns = `e.id, e.subject_id, e.title, e.body, e.full_question, e.description, e.qualification,
	e.exam_board, e.mark_scheme, e.total_marks`

func listSubjects(ctx context.Context, q Querier) ([]Subject, error) {
	var out []Subject
	if err := q.SelectContext(ctx, &out, `SELECT id, name FROM subjects ORDER BY name, id`); err != nil {
		return nil, apperr.Classify(errors.Wrap(err, "list subjects"))
	}
	if out == nil {
		out = []Subject{}
	}
	return out, nil
}

// getSubject returns nil, nil when the subject does not exist.
func getSubject(ctx context.Context, q Querier, id int64) (*Subject, error) {
	var s Subject
	err := q.GetContext(ctx, &s, `SELECT id, name FROM subjects WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Classify(errors.Wrapf(err, "get subject %d", id))
	}
	return &s, nil
}

func listEssaySummaries(ctx context.Context, q Querier, subjectID int64) ([]EssaySummary, error) {
	var out []EssaySummary
	err := q.SelectContext(ctx, &out, `
		SELECT `+essayColumns+`, COUNT(r.id) AS response_count
		  FROM essays e
		  LEFT JOIN responses r ON r.essay_id = e.id
		 WHERE e.subject_id = $1
		 GROUP BY e.id
		 ORDER BY e.title, e.id`, subjectID)
	if err != nil {
		return nil, apperr.Classify(errors.Wrapf(err, "list essays for subject %d", subjectID))
	}
	if out == nil {
		out = []EssaySummary{}
	}
	return out, nil
}

// getEssay returns nil, nil when the essay does not exist.
func getEssay(ctx context.Context, q Querier, id int64) (*Essay, error) {
	var e Essay
	err := q.GetContext(ctx, &e, `SELECT `+essayColumns+` FROM essays e WHERE e.id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Classify(errors.Wrapf(err, "get essay %d", id))
	}
	return &e, nil
}

// listResponses orders by grade, highest first; equal grades keep id order.
func listResponses(ctx context.Context, q Querier, essayID int64) ([]Response, error) {
	var out []Response
	err := q.SelectContext(ctx, &out, `
		SELECT id, essay_id, student_name, candidate_number, full_text, grade, feedback
		  FROM responses
		 WHERE essay_id = $1
		 ORDER BY grade DESC, id`, essayID)
	if err != nil {
		return nil, apperr.Classify(errors.Wrapf(err, "list responses for essay %d", essayID))
	}
	if out == nil {
		out = []Response{}
	}
	return out, nil
}

func listHighlights(ctx context.Context, q Querier, responseID int64) ([]Highlight, error) {
	var out []Highlight
	err := q.SelectContext(ctx, &out, `
		SELECT id, response_id, text, type, comment
		  FROM highlights
		 WHERE response_id = $1
		 ORDER BY id`, responseID)
	if err != nil {
		return nil, apperr.Classify(errors.Wrapf(err, "list highlights for response %d", responseID))
	}
	if out == nil {
		out = []Highlight{}
	}
	return out, nil
}
