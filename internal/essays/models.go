package essays

type Subject struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Essay struct {
	ID        int64  `db:"id" json:"id"`
	SubjectID int64  `db:"subject_id" json:"subject_id"`
	Title     string `db:"title" json:"title"`
	Body      string `db:"body" json:"body"`

	FullQuestion  *string `db:"full_question" json:"full_question"`
	Description   *string `db:"description" json:"description"`
	Qualification *string `db:"qualification" json:"qualification"`
	ExamBoard     *string `db:"exam_board" json:"exam_board"`
	MarkScheme    *string `db:"mark_scheme" json:"mark_scheme"`
	TotalMarks    *int64  `db:"total_marks" json:"total_marks"`
}

// EssaySummary is an Essay as listed under its subject.
type EssaySummary struct {
	Essay
	ResponseCount int64 `db:"response_count" json:"response_count"`
}

type SubjectEssays struct {
	SubjectName string         `json:"subject_name"`
	Essays      []EssaySummary `json:"essays"`
}

type Highlight struct {
	ID         int64   `db:"id" json:"id"`
	ResponseID int64   `db:"response_id" json:"response_id"`
	Text       string  `db:"text" json:"text"`
	Type       *string `db:"type" json:"type"`
	Comment    *string `db:"comment" json:"comment"`
}

type Response struct {
	ID              int64    `db:"id" json:"id"`
	EssayID         int64    `db:"essay_id" json:"essay_id"`
	StudentName     *string  `db:"student_name" json:"student_name"`
	CandidateNumber *string  `db:"candidate_number" json:"candidate_number"`
	FullText        *string  `db:"full_text" json:"full_text"`
	Grade           float64  `db:"grade" json:"grade"`
	Feedback        Document `db:"feedback" json:"feedback"`

	Highlights []Highlight `db:"-" json:"highlights"`
}

// EssayDetail is the assembled view served by GET /api/essays/{id}.
// Subject is nil when the essay points at a subject that no longer exists.
type EssayDetail struct {
	Essay
	Subject      *Subject   `json:"subject"`
	AverageGrade float64    `json:"average_grade"`
	Responses    []Response `json:"responses"`
}
