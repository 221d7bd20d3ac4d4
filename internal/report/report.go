// Package report turns a completed audit session into a structured report and
// computes aggregate statistics over the sessions still in the store.
package report

import (
	"strings"
	"time"

	"github.com/m3rciful/privacybot/internal/quiz"
	"github.com/m3rciful/privacybot/internal/session"
)

// WeakPoint pairs a below-maximum answer with its question, so the rendering
// layer can show the remediation path.
type WeakPoint struct {
	Question quiz.Question
	Answer   session.AnswerRecord
}

// Stats describes the sessions remaining in the store at report time. The
// reporting session is removed before these are computed, so it never counts
// against itself.
type Stats struct {
	ActiveSessions int
	StartedToday   int
	MeanScore      float64
	// Percentile is the share of remaining sessions strictly outscored by
	// this report, in percent. 100.0 against an empty store.
	Percentile float64
}

// Report is the structured outcome of one completed audit.
type Report struct {
	ChatID      int64
	Username    string
	DisplayName string
	Score       int
	MaxScore    int
	Level       quiz.Level
	StartedAt   time.Time
	FinishedAt  time.Time
	Duration    time.Duration
	Tally       map[string]int
	WeakPoints  []WeakPoint
	Bar         string
	Stats       Stats
}

// Generator builds reports against a catalog and a session store.
type Generator struct {
	Catalog *quiz.Catalog
	Store   *session.Store
}

// Build assembles the per-session part of the report. Aggregates are filled
// separately, after the session has left the store.
func (g *Generator) Build(s *session.Session, now time.Time) Report {
	tally := make(map[string]int, 3)
	for _, a := range quiz.Answers() {
		tally[a] = 0
	}

	var weak []WeakPoint
	maxPer := g.Catalog.MaxPerQuestion()
	for _, rec := range s.Answers {
		tally[rec.Choice]++
		if rec.Points < maxPer {
			if q, _, ok := g.Catalog.ByID(rec.QuestionID); ok {
				weak = append(weak, WeakPoint{Question: q, Answer: rec})
			}
		}
	}

	return Report{
		ChatID:      s.ChatID,
		Username:    s.Username,
		DisplayName: s.DisplayName,
		Score:       s.Score,
		MaxScore:    g.Catalog.MaxScore(),
		Level:       g.Catalog.LevelFor(s.Score),
		StartedAt:   s.StartedAt,
		FinishedAt:  now,
		Duration:    now.Sub(s.StartedAt),
		Tally:       tally,
		WeakPoints:  weak,
		Bar:         scoreBar(s.Score, g.Catalog.MaxScore()),
	}
}

// Aggregates computes store-wide statistics for the given score.
func (g *Generator) Aggregates(score int, now time.Time) Stats {
	snap := g.Store.Snapshot()
	stats := Stats{ActiveSessions: len(snap)}
	if len(snap) == 0 {
		stats.Percentile = 100.0
		return stats
	}

	year, month, day := now.Date()
	total := 0
	below := 0
	for _, s := range snap {
		total += s.Score
		if s.Score < score {
			below++
		}
		sy, sm, sd := s.StartedAt.Date()
		if sy == year && sm == month && sd == day {
			stats.StartedToday++
		}
	}
	stats.MeanScore = float64(total) / float64(len(snap))
	stats.Percentile = float64(below) / float64(len(snap)) * 100.0
	return stats
}

// StartedToday counts live sessions started on now's calendar day.
func (g *Generator) StartedToday(now time.Time) int {
	year, month, day := now.Date()
	n := 0
	for _, s := range g.Store.Snapshot() {
		sy, sm, sd := s.StartedAt.Date()
		if sy == year && sm == month && sd == day {
			n++
		}
	}
	return n
}

// MeanScore averages the scores of live sessions; 0.0 for an empty store.
func (g *Generator) MeanScore() float64 {
	snap := g.Store.Snapshot()
	if len(snap) == 0 {
		return 0.0
	}
	total := 0
	for _, s := range snap {
		total += s.Score
	}
	return float64(total) / float64(len(snap))
}

func scoreBar(score, max int) string {
	if score < 0 {
		score = 0
	}
	if score > max {
		score = max
	}
	return strings.Repeat("🟩", score) + strings.Repeat("⬜", max-score)
}
