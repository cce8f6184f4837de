package essays

import "context"

// Reader is everything the HTTP surface needs from the essay store.
type Reader interface {
	ListSubjects(ctx context.Context) ([]Subject, error)
	ListEssaysForSubject(ctx context.Context, subjectID int64) (SubjectEssays, error)
	AssembleEssayDetail(ctx context.Context, essayID int64) (EssayDetail, error)
}

// Querier is satisfied by *sqlx.DB and *sqlx.Tx.
type Querier interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}
