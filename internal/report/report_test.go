package report

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/m3rciful/privacybot/internal/quiz"
	"github.com/m3rciful/privacybot/internal/session"
)

func newGenerator() (*Generator, *session.Store) {
	store := session.NewStore()
	return &Generator{Catalog: quiz.Default(), Store: store}, store
}

func finishedSession(t *testing.T, store *session.Store, chatID int64, choices []string, started time.Time) *session.Session {
	t.Helper()
	catalog := quiz.Default()
	store.Start(chatID, "", "Пользователь", started)
	var out *session.Session
	store.Do(chatID, func(s *session.Session) {
		for i, choice := range choices {
			q, ok := catalog.ByIndex(i)
			if !ok {
				t.Fatalf("no question at index %d", i)
			}
			points, ok := catalog.PointsFor(choice)
			if !ok {
				t.Fatalf("choice %q is not canonical", choice)
			}
			s.Record(q.ID, choice, points, started)
		}
		out = s
	})
	return out
}

func TestPerfectAudit(t *testing.T) {
	g, store := newGenerator()
	started := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := finishedSession(t, store, 1, []string{"Никто", "Никто", "Никто", "Никто", "Никто"}, started)

	rep := g.Build(s, started.Add(90*time.Second))
	if rep.Score != 10 || rep.MaxScore != 10 {
		t.Fatalf("score = %d/%d, expected 10/10", rep.Score, rep.MaxScore)
	}
	if rep.Level.Name != "🎉 ИДЕАЛЬНО" {
		t.Fatalf("level = %+v, expected the top entry", rep.Level)
	}
	if len(rep.WeakPoints) != 0 {
		t.Fatalf("weak points = %d, expected none", len(rep.WeakPoints))
	}
	if rep.Tally["Никто"] != 5 || rep.Tally["Мои контакты"] != 0 || rep.Tally["Все"] != 0 {
		t.Fatalf("tally = %v", rep.Tally)
	}
	if rep.Duration != 90*time.Second {
		t.Fatalf("duration = %v", rep.Duration)
	}
	if rep.Bar != strings.Repeat("🟩", 10) {
		t.Fatalf("bar = %q", rep.Bar)
	}
}

func TestAllExposedAudit(t *testing.T) {
	g, store := newGenerator()
	started := time.Now()
	s := finishedSession(t, store, 2, []string{"Все", "Все", "Все", "Все", "Все"}, started)

	rep := g.Build(s, started.Add(time.Minute))
	if rep.Score != 0 {
		t.Fatalf("score = %d, expected 0", rep.Score)
	}
	if len(rep.WeakPoints) != 5 {
		t.Fatalf("weak points = %d, expected all 5", len(rep.WeakPoints))
	}
	wantOrder := []string{"phone", "last_seen", "profile_photo", "groups", "forwarding"}
	for i, wp := range rep.WeakPoints {
		if wp.Question.ID != wantOrder[i] {
			t.Fatalf("weak point %d = %q, expected %q", i, wp.Question.ID, wantOrder[i])
		}
	}
	if rep.Bar != strings.Repeat("⬜", 10) {
		t.Fatalf("bar = %q", rep.Bar)
	}
}

func TestMixedAnswers(t *testing.T) {
	g, store := newGenerator()
	started := time.Now()
	choices := []string{"Все", "Мои контакты", "Никто", "Все", "Мои контакты"}
	s := finishedSession(t, store, 3, choices, started)

	rep := g.Build(s, started.Add(time.Minute))
	if rep.Score != 4 {
		t.Fatalf("score = %d, expected 0+1+2+0+1=4", rep.Score)
	}
	if len(rep.WeakPoints) != 4 {
		t.Fatalf("weak points = %d, expected the 4 non-top answers", len(rep.WeakPoints))
	}
	wantIDs := []string{"phone", "last_seen", "groups", "forwarding"}
	for i, wp := range rep.WeakPoints {
		if wp.Question.ID != wantIDs[i] {
			t.Fatalf("weak point %d = %q, expected %q", i, wp.Question.ID, wantIDs[i])
		}
	}
	sum := 0
	for _, n := range rep.Tally {
		sum += n
	}
	if sum != 5 {
		t.Fatalf("tally sums to %d, expected 5", sum)
	}
}

func TestAggregatesOnEmptyStore(t *testing.T) {
	g, _ := newGenerator()
	stats := g.Aggregates(7, time.Now())
	if stats.Percentile != 100.0 {
		t.Fatalf("percentile = %v, expected 100.0 on empty store", stats.Percentile)
	}
	if stats.MeanScore != 0.0 {
		t.Fatalf("mean = %v, expected 0.0 on empty store", stats.MeanScore)
	}
	if g.MeanScore() != 0.0 {
		t.Fatalf("MeanScore = %v, expected 0.0", g.MeanScore())
	}
}

func TestAggregatesAgainstRemainingSessions(t *testing.T) {
	g, store := newGenerator()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.Local)

	// Two live sessions started today, one from yesterday.
	finishedSession(t, store, 10, []string{"Никто", "Никто"}, now.Add(-time.Hour))      // score 4
	finishedSession(t, store, 11, []string{"Все"}, now.Add(-2*time.Hour))               // score 0
	finishedSession(t, store, 12, []string{"Мои контакты"}, now.Add(-26*time.Hour))     // score 1, yesterday

	stats := g.Aggregates(4, now)
	if stats.ActiveSessions != 3 {
		t.Fatalf("active = %d", stats.ActiveSessions)
	}
	if stats.StartedToday != 2 {
		t.Fatalf("started today = %d, expected 2", stats.StartedToday)
	}
	if math.Abs(stats.MeanScore-5.0/3.0) > 1e-9 {
		t.Fatalf("mean = %v", stats.MeanScore)
	}
	// Strictly below 4: the sessions scoring 0 and 1.
	if math.Abs(stats.Percentile-2.0/3.0*100.0) > 1e-9 {
		t.Fatalf("percentile = %v", stats.Percentile)
	}
}
