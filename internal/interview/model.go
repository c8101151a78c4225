package interview

import "time"

// QuestionSet is the interview script for one discipline. TimeLimit is in seconds.
type QuestionSet struct {
	Discipline string    `json:"discipline" yaml:"discipline"`
	Questions  []string  `json:"questions" yaml:"questions"`
	TimeLimit  int       `json:"timeLimit" yaml:"timeLimit"`
	UpdatedAt  time.Time `json:"-" yaml:"-"`
}
