// Package session keeps the in-memory audit sessions, one per chat.
// Sessions never outlive the process; there is no persistence layer here.
package session

import "time"

// AnswerRecord is one accepted answer. Records are append-only.
type AnswerRecord struct {
	QuestionID string
	Choice     string
	Points     int
	AnsweredAt time.Time
}

// Session is a single chat's in-progress audit.
//
// Invariants held outside of a Store.Do critical section:
// CurrentIndex == len(Answers) and Score == sum of recorded points.
type Session struct {
	ChatID       int64
	Username     string
	DisplayName  string
	StartedAt    time.Time
	Answers      []AnswerRecord
	CurrentIndex int
	Score        int
}

// Record appends an answer and advances the session.
func (s *Session) Record(questionID, choice string, points int, at time.Time) {
	s.Answers = append(s.Answers, AnswerRecord{
		QuestionID: questionID,
		Choice:     choice,
		Points:     points,
		AnsweredAt: at,
	})
	s.Score += points
	s.CurrentIndex++
}

// Completed reports whether all total questions have been answered.
func (s *Session) Completed(total int) bool {
	return s.CurrentIndex >= total
}

// clone returns a deep copy safe to read outside the store lock.
func (s *Session) clone() Session {
	out := *s
	out.Answers = append([]AnswerRecord(nil), s.Answers...)
	return out
}
