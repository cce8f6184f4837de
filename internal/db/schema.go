package db

// SchemaSQLite mirrors the tables the hosted postgres database exposes.
const SchemaSQLite = `
CREATE TABLE IF NOT EXISTS subjects (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS essays (
  id INTEGER PRIMARY KEY,
  subject_id INTEGER NOT NULL REFERENCES subjects(id),
  title TEXT NOT NULL,
  body TEXT NOT NULL DEFAULT '',
  full_question TEXT,
  description TEXT,
  qualification TEXT,
  exam_board TEXT,
  mark_scheme TEXT,
  total_marks INTEGER
);

CREATE TABLE IF NOT EXISTS responses (
  id INTEGER PRIMARY KEY,
  essay_id INTEGER NOT NULL REFERENCES essays(id),
  student_name TEXT,
  candidate_number TEXT,
  full_text TEXT,
  grade REAL NOT NULL,
  feedback TEXT
);

CREATE TABLE IF NOT EXISTS highlights (
  id INTEGER PRIMARY KEY,
  response_id INTEGER NOT NULL REFERENCES responses(id),
  text TEXT NOT NULL,
  type TEXT,
  comment TEXT
);

CREATE INDEX IF NOT EXISTS idx_essays_subject ON essays(subject_id);
CREATE INDEX IF NOT EXISTS idx_responses_essay ON responses(essay_id);
CREATE INDEX IF NOT EXISTS idx_highlights_response ON highlights(response_id);
`
