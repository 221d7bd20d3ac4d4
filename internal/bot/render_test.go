package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/m3rciful/privacybot/internal/archive"
	"github.com/m3rciful/privacybot/internal/quiz"
	"github.com/m3rciful/privacybot/internal/report"
	"github.com/m3rciful/privacybot/internal/session"
)

func TestRenderWelcomeEscapesName(t *testing.T) {
	text := renderWelcome("<script>alert(1)</script>")
	if strings.Contains(text, "<script>") {
		t.Fatal("display name must be HTML-escaped")
	}
	if !strings.Contains(text, "&lt;script&gt;") {
		t.Fatalf("expected escaped name in %q", text)
	}
}

func TestRenderWelcomeDefaultsName(t *testing.T) {
	text := renderWelcome("  ")
	if !strings.Contains(text, "Привет, Пользователь") {
		t.Fatalf("expected default name, got %q", text)
	}
}

func TestRenderQuestionNumbering(t *testing.T) {
	catalog := quiz.Default()
	q, ok := catalog.ByIndex(2)
	if !ok {
		t.Fatal("missing question at index 2")
	}
	text := renderQuestion(q, 2, catalog.Len())
	if !strings.Contains(text, "Вопрос 3 из 5") {
		t.Fatalf("expected 1-based numbering, got %q", text)
	}
	if !strings.Contains(text, q.Prompt) {
		t.Fatal("question prompt missing")
	}
}

func TestRenderRiskIncludesRemediation(t *testing.T) {
	catalog := quiz.Default()
	q, _, ok := catalog.ByID("phone")
	if !ok {
		t.Fatal("phone question missing")
	}
	text := renderRisk(q, quiz.AnswerEveryone)
	if !strings.Contains(text, "ВЫСОКИЙ РИСК") {
		t.Fatalf("expected high risk explanation, got %q", text)
	}
	if !strings.Contains(text, q.Remediation) {
		t.Fatal("remediation path missing")
	}
	if !strings.Contains(text, "<i>Нажмите на кнопку в Telegram чтобы перейти прямо в настройки</i>") {
		t.Fatal("settings hint line missing")
	}
}

func buildReport(t *testing.T, answers []string) report.Report {
	t.Helper()
	catalog := quiz.Default()
	store := session.NewStore()
	start := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	store.Start(1, "alice", "Алиса", start)

	var s session.Session
	store.Do(1, func(cur *session.Session) {
		at := start
		for i, choice := range answers {
			q, _ := catalog.ByIndex(i)
			points, _ := catalog.PointsFor(choice)
			at = at.Add(30 * time.Second)
			cur.Record(q.ID, choice, points, at)
		}
		s = *cur
	})

	gen := &report.Generator{Catalog: catalog, Store: store}
	rep := gen.Build(&s, start.Add(2*time.Minute+30*time.Second))
	store.Delete(1)
	rep.Stats = gen.Aggregates(rep.Score, start.Add(3*time.Minute))
	return rep
}

func TestRenderReportPerfect(t *testing.T) {
	rep := buildReport(t, []string{
		quiz.AnswerNobody, quiz.AnswerNobody, quiz.AnswerNobody,
		quiz.AnswerNobody, quiz.AnswerNobody,
	})
	text := renderReport(&rep)
	if !strings.Contains(text, "10/10 баллов") {
		t.Fatalf("expected perfect score, got %q", text)
	}
	if !strings.Contains(text, "✅ Отличная работа! Все настройки оптимальны.") {
		t.Fatal("perfect report must not list weak points")
	}
	if strings.Contains(text, "СЛАБЫЕ МЕСТА") {
		t.Fatal("weak points section must be absent on a perfect score")
	}
	if !strings.Contains(text, "🟩🟩🟩🟩🟩🟩🟩🟩🟩🟩 10/10") {
		t.Fatal("visual bar must be fully filled")
	}
	if !strings.Contains(text, "2 мин 30 сек") {
		t.Fatalf("expected duration rendering, got %q", text)
	}
}

func TestRenderReportWeakPoints(t *testing.T) {
	rep := buildReport(t, []string{
		quiz.AnswerEveryone, quiz.AnswerContacts, quiz.AnswerNobody,
		quiz.AnswerNobody, quiz.AnswerNobody,
	})
	text := renderReport(&rep)
	if !strings.Contains(text, "СЛАБЫЕ МЕСТА") {
		t.Fatal("expected weak points section")
	}
	if !strings.Contains(text, "🔴 ВЫСОКИЙ риск") {
		t.Fatal("expected high risk marker for a zero-point answer")
	}
	if !strings.Contains(text, "🟡 СРЕДНИЙ риск") {
		t.Fatal("expected medium risk marker for a one-point answer")
	}
	if !strings.Contains(text, "7/10 баллов") {
		t.Fatalf("expected score 7, got %q", text)
	}
}

func TestRenderReportStatsEmptyStore(t *testing.T) {
	stats := report.Stats{StartedToday: 0, MeanScore: 0, Percentile: 100}
	text := renderReportStats(stats, 10)
	if !strings.Contains(text, "0.0/10") {
		t.Fatalf("expected zero mean, got %q", text)
	}
	if !strings.Contains(text, "лучше чем у 100%") {
		t.Fatalf("expected percentile 100, got %q", text)
	}
}

func TestRenderAdminStats(t *testing.T) {
	stats := report.Stats{ActiveSessions: 3, StartedToday: 2, MeanScore: 6.5}
	text := renderAdminStats(stats, 10, 90*time.Minute, 2, nil)
	if !strings.Contains(text, "Активных сессий: 3") {
		t.Fatalf("expected active sessions, got %q", text)
	}
	if !strings.Contains(text, "6.5/10") {
		t.Fatalf("expected mean score, got %q", text)
	}
	if !strings.Contains(text, "1.5 часов") {
		t.Fatalf("expected uptime in hours, got %q", text)
	}
	if !strings.Contains(text, "Ошибок отправки: 2") {
		t.Fatalf("expected send error counter, got %q", text)
	}
	if strings.Contains(text, "АРХИВ") {
		t.Fatal("archive section must be absent without counters")
	}

	withArchive := renderAdminStats(stats, 10, time.Hour, 0, &archive.Counters{Total: 40, Today: 4})
	if !strings.Contains(withArchive, "Всего завершено: 40") {
		t.Fatalf("expected archive totals, got %q", withArchive)
	}
}

func TestFallbackRepliesMatchOriginalSet(t *testing.T) {
	if len(fallbackReplies) != 4 {
		t.Fatalf("expected 4 fallback replies, got %d", len(fallbackReplies))
	}
	seen := map[string]bool{}
	for _, r := range fallbackReplies {
		if r == "" {
			t.Fatal("empty fallback reply")
		}
		if seen[r] {
			t.Fatalf("duplicate fallback reply %q", r)
		}
		seen[r] = true
	}
}
