package essays_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-marking/internal/apperr"
	"github.com/mind-engage/mindengage-marking/internal/db/dbtest"
	"github.com/mind-engage/mindengage-marking/internal/essays"
)

func newStore(t *testing.T) *essays.SQLStore {
	t.Helper()
	d := dbtest.Open(t)
	dbtest.SeedHistory(t, d)
	log, _ := test.NewNullLogger()
	return essays.NewSQLStore(d, log)
}

func TestListSubjectsOrderedByName(t *testing.T) {
	s := newStore(t)

	got, err := s.ListSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []essays.Subject{
		{ID: 3, Name: "Biology"},
		{ID: 2, Name: "English"},
		{ID: 1, Name: "History"},
	}, got)
}

func TestListSubjectsEmpty(t *testing.T) {
	d := dbtest.Open(t)
	s := essays.NewSQLStore(d, nil)

	got, err := s.ListSubjects(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetSubjectAndEssay(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	subj, err := s.GetSubject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &essays.Subject{ID: 1, Name: "History"}, subj)

	subj, err = s.GetSubject(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, subj)

	e, err := s.GetEssay(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "WWI", e.Title)
	assert.Equal(t, int64(1), e.SubjectID)
	require.NotNil(t, e.ExamBoard)
	assert.Equal(t, "AQA", *e.ExamBoard)
	assert.Nil(t, e.Qualification)

	e, err = s.GetEssay(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestListEssaysForSubject(t *testing.T) {
	s := newStore(t)

	got, err := s.ListEssaysForSubject(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "History", got.SubjectName)
	require.Len(t, got.Essays, 2)

	// ordered by title: "Cold War" < "WWI"
	assert.Equal(t, int64(11), got.Essays[0].ID)
	assert.Equal(t, int64(0), got.Essays[0].ResponseCount)
	assert.Equal(t, int64(10), got.Essays[1].ID)
	assert.Equal(t, int64(2), got.Essays[1].ResponseCount)
}

func TestListEssaysForSubjectWithoutEssays(t *testing.T) {
	s := newStore(t)

	got, err := s.ListEssaysForSubject(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Biology", got.SubjectName)
	require.NotNil(t, got.Essays)
	assert.Empty(t, got.Essays)
}

func TestListEssaysForMissingSubject(t *testing.T) {
	s := newStore(t)

	_, err := s.ListEssaysForSubject(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Subject not found", ae.Message)
}

func TestAssembleEssayDetail(t *testing.T) {
	s := newStore(t)

	got, err := s.AssembleEssayDetail(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, "WWI", got.Title)
	assert.Equal(t, &essays.Subject{ID: 1, Name: "History"}, got.Subject)
	assert.Equal(t, 90.0, got.AverageGrade)

	require.Len(t, got.Responses, 2)
	assert.Equal(t, int64(101), got.Responses[0].ID)
	assert.Equal(t, 95.0, got.Responses[0].Grade)
	assert.Equal(t, int64(100), got.Responses[1].ID)
	assert.Equal(t, 85.0, got.Responses[1].Grade)

	require.Len(t, got.Responses[0].Highlights, 1)
	assert.Equal(t, int64(1000), got.Responses[0].Highlights[0].ID)
	assert.Equal(t, "Militarism", got.Responses[0].Highlights[0].Text)
	require.NotNil(t, got.Responses[1].Highlights)
	assert.Empty(t, got.Responses[1].Highlights)

	var fb map[string]any
	require.NoError(t, json.Unmarshal(got.Responses[0].Feedback, &fb))
	assert.Equal(t, "Keep going.", fb["next_steps"])
}

func TestAssembleEssayDetailWithoutResponses(t *testing.T) {
	s := newStore(t)

	got, err := s.AssembleEssayDetail(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.AverageGrade)
	require.NotNil(t, got.Responses)
	assert.Empty(t, got.Responses)
}

func TestAssembleEssayDetailMissingEssay(t *testing.T) {
	s := newStore(t)

	_, err := s.AssembleEssayDetail(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Essay not found", ae.Message)
}

func TestAssembleEssayDetailDanglingSubject(t *testing.T) {
	d := dbtest.Open(t)
	dbtest.Exec(t, d,
		`PRAGMA foreign_keys = OFF`,
		`INSERT INTO essays (id, subject_id, title, body) VALUES (50, 77, 'Orphan', '')`,
	)
	log, hook := test.NewNullLogger()
	s := essays.NewSQLStore(d, log)

	got, err := s.AssembleEssayDetail(context.Background(), 50)
	require.NoError(t, err)
	assert.Nil(t, got.Subject)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"subject":null`)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, int64(77), hook.LastEntry().Data["subject_id"])
}

func TestAssembleEssayDetailOrderingAndOwnership(t *testing.T) {
	d := dbtest.Open(t)
	dbtest.Exec(t, d,
		`INSERT INTO subjects (id, name) VALUES (1, 'Physics')`,
		`INSERT INTO essays (id, subject_id, title, body) VALUES (1, 1, 'Entropy', ''), (2, 1, 'Optics', '')`,
	)
	grades := []float64{70, 90, 80, 90, 55.5, 100, 0}
	for i, g := range grades {
		dbtest.Exec(t, d, fmt.Sprintf(
			`INSERT INTO responses (id, essay_id, grade) VALUES (%d, 1, %v)`, i+1, g))
		for h := 0; h < i; h++ {
			dbtest.Exec(t, d, fmt.Sprintf(
				`INSERT INTO highlights (id, response_id, text) VALUES (%d, %d, 'h')`, (i+1)*100+h, i+1))
		}
	}
	// a response on another essay must not leak in
	dbtest.Exec(t, d,
		`INSERT INTO responses (id, essay_id, grade) VALUES (99, 2, 100)`,
		`INSERT INTO highlights (id, response_id, text) VALUES (9900, 99, 'other')`,
	)

	s := essays.NewSQLStore(d, nil)
	got, err := s.AssembleEssayDetail(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got.Responses, len(grades))

	var sum float64
	for _, g := range grades {
		sum += g
	}
	assert.InDelta(t, sum/float64(len(grades)), got.AverageGrade, 1e-9)

	for i := 0; i+1 < len(got.Responses); i++ {
		assert.GreaterOrEqual(t, got.Responses[i].Grade, got.Responses[i+1].Grade)
	}
	// equal grades keep id order
	assert.Equal(t, int64(2), got.Responses[1].ID)
	assert.Equal(t, int64(4), got.Responses[2].ID)

	for _, r := range got.Responses {
		assert.Len(t, r.Highlights, int(r.ID-1), "response %d", r.ID)
		for _, h := range r.Highlights {
			assert.Equal(t, r.ID, h.ResponseID)
		}
	}
}

func TestAverageGrade(t *testing.T) {
	assert.Equal(t, 0.0, essays.AverageGrade(nil))
	assert.Equal(t, 80.0, essays.AverageGrade([]essays.Response{{Grade: 80}, {Grade: 90}, {Grade: 70}}))
	assert.Equal(t, 2.5, essays.AverageGrade([]essays.Response{{Grade: 2}, {Grade: 3}}))
}
