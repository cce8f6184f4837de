// Package dbtest opens throwaway sqlite databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mind-engage/mindengage-marking/internal/db"
)

// Open returns an in-memory database with the reference schema, private to t.
func Open(t testing.TB) *db.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	d, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// Exec runs each statement in order and fails the test on the first error.
func Exec(t testing.TB, d *db.DB, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		if _, err := d.X.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
}

// SeedHistory loads the History/WWI example: two responses graded 85 and 95,
// with a single highlight on the higher graded one.
func SeedHistory(t testing.TB, d *db.DB) {
	t.Helper()
	Exec(t, d,
		`INSERT INTO subjects (id, name) VALUES (1, 'History'), (2, 'English'), (3, 'Biology')`,
		`INSERT INTO essays (id, subject_id, title, body, full_question, description, exam_board, total_marks)
		 VALUES (10, 1, 'WWI', 'Assess the causes of the First World War.', 'Assess the causes of the First World War. [25 marks]', 'Causation essay', 'AQA', 100),
		        (11, 1, 'Cold War', 'How far was the Cold War inevitable?', NULL, NULL, NULL, NULL),
		        (20, 2, 'Macbeth', 'Explore ambition in Macbeth.', NULL, NULL, NULL, 40)`,
		`INSERT INTO responses (id, essay_id, student_name, candidate_number, full_text, grade, feedback)
		 VALUES (100, 10, 'Ada', '0001', 'The alliance system...', 85, '{"strengths":["structure"],"improvements":["evidence"],"next_steps":"Use more sources."}'),
		        (101, 10, 'Grace', '0002', 'Militarism was...', 95, '{"strengths":["analysis"],"improvements":[],"next_steps":"Keep going."}')`,
		`INSERT INTO highlights (id, response_id, text, type, comment)
		 VALUES (1000, 101, 'Militarism', 'strength', 'Clear factor named')`,
	)
}
