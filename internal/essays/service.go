package essays

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/mindengage-marking/internal/apperr"
	"github.com/mind-engage/mindengage-marking/internal/db"
)

const (
	msgSubjectNotFound = "Subject not found"
	msgEssayNotFound   = "Essay not found"
)

// SQLStore serves the read API from the pooled database. Multi-step reads
// run inside one read transaction so they observe a single snapshot.
type SQLStore struct {
	db  *db.DB
	log logrus.FieldLogger
}

var _ Reader = (*SQLStore)(nil)

func NewSQLStore(d *db.DB, log logrus.FieldLogger) *SQLStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SQLStore{db: d, log: log}
}

func (s *SQLStore) ListSubjects(ctx context.Context) ([]Subject, error) {
	var out []Subject
	err := s.db.ReadTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		out, err = listSubjects(ctx, tx)
		return err
	})
	return out, err
}

func (s *SQLStore) GetSubject(ctx context.Context, id int64) (*Subject, error) {
	var out *Subject
	err := s.db.ReadTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		out, err = getSubject(ctx, tx, id)
		return err
	})
	return out, err
}

func (s *SQLStore) GetEssay(ctx context.Context, id int64) (*Essay, error) {
	var out *Essay
	err := s.db.ReadTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		out, err = getEssay(ctx, tx, id)
		return err
	})
	return out, err
}

// ListEssaysForSubject checks the subject before listing so that an unknown
// subject is told apart from one without essays.
func (s *SQLStore) ListEssaysForSubject(ctx context.Context, subjectID int64) (SubjectEssays, error) {
	var out SubjectEssays
	err := s.db.ReadTx(ctx, func(tx *sqlx.Tx) error {
		subj, err := getSubject(ctx, tx, subjectID)
		if err != nil {
			return err
		}
		if subj == nil {
			return apperr.NotFound(msgSubjectNotFound)
		}
		list, err := listEssaySummaries(ctx, tx, subjectID)
		if err != nil {
			return err
		}
		out = SubjectEssays{SubjectName: subj.Name, Essays: list}
		return nil
	})
	return out, err
}

// AssembleEssayDetail loads an essay with its subject, its responses ranked
// by grade and each response's highlights, and computes the average grade.
func (s *SQLStore) AssembleEssayDetail(ctx context.Context, essayID int64) (EssayDetail, error) {
	var out EssayDetail
	err := s.db.ReadTx(ctx, func(tx *sqlx.Tx) error {
		essay, err := getEssay(ctx, tx, essayID)
		if err != nil {
			return err
		}
		if essay == nil {
			return apperr.NotFound(msgEssayNotFound)
		}

		subj, err := getSubject(ctx, tx, essay.SubjectID)
		if err != nil {
			return err
		}
		if subj == nil {
			s.log.WithFields(logrus.Fields{
				"essay_id":   essay.ID,
				"subject_id": essay.SubjectID,
			}).Warn("essay references a missing subject")
		}

		responses, err := listResponses(ctx, tx, essayID)
		if err != nil {
			return err
		}
		for i := range responses {
			hl, err := listHighlights(ctx, tx, responses[i].ID)
			if err != nil {
				return err
			}
			responses[i].Highlights = hl
		}

		out = EssayDetail{
			Essay:        *essay,
			Subject:      subj,
			AverageGrade: AverageGrade(responses),
			Responses:    responses,
		}
		return nil
	})
	return out, err
}

// AverageGrade is the arithmetic mean of the grades, or 0 for no responses.
func AverageGrade(responses []Response) float64 {
	if len(responses) == 0 {
		return 0
	}
	var sum float64
	for _, r := range responses {
		sum += r.Grade
	}
	return sum / float64(len(responses))
}
