package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	coreconfig "github.com/m3rciful/privacybot/core/config"
	tgsender "github.com/m3rciful/privacybot/core/telegram/sender"
	"github.com/m3rciful/privacybot/internal/audit"
	"github.com/m3rciful/privacybot/internal/quiz"
	"github.com/m3rciful/privacybot/internal/session"

	tele "gopkg.in/telebot.v4"
)

type sentMessage struct {
	text string
	opts *tele.SendOptions
}

// fakeContext implements the handful of tele.Context methods the handlers
// touch. Anything else panics through the embedded nil interface.
type fakeContext struct {
	tele.Context
	chat   *tele.Chat
	sender *tele.User
	text   string
	store  map[string]any
	sent   []sentMessage
}

func newFakeContext(chatID int64) *fakeContext {
	return &fakeContext{
		chat:   &tele.Chat{ID: chatID},
		sender: &tele.User{ID: chatID, FirstName: "Алиса", Username: "alice"},
		store:  map[string]any{},
	}
}

func (f *fakeContext) Chat() *tele.Chat     { return f.chat }
func (f *fakeContext) Sender() *tele.User   { return f.sender }
func (f *fakeContext) Text() string         { return f.text }
func (f *fakeContext) Update() tele.Update  { return tele.Update{} }
func (f *fakeContext) Get(key string) any   { return f.store[key] }
func (f *fakeContext) Set(key string, v any) { f.store[key] = v }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	msg := sentMessage{}
	if s, ok := what.(string); ok {
		msg.text = s
	}
	for _, o := range opts {
		if so, ok := o.(*tele.SendOptions); ok {
			msg.opts = so
		}
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestApp(t *testing.T) (*App, *int) {
	t.Helper()
	store := session.NewStore()
	pauses := 0
	app := &App{
		cfg:     &coreconfig.Config{},
		store:   store,
		machine: audit.New(quiz.Default(), store),
		sleep:   func(time.Duration) { pauses++ },
	}
	app.startedAt = time.Now()
	return app, &pauses
}

func mustContain(t *testing.T, text, want string) {
	t.Helper()
	if !strings.Contains(text, want) {
		t.Fatalf("message %q does not contain %q", text, want)
	}
}

func TestFullAuditFlow(t *testing.T) {
	app, pauses := newTestApp(t)
	c := newFakeContext(100)

	if err := app.handleStart(c); err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(c.sent) != 1 {
		t.Fatalf("expected 1 message after /start, got %d", len(c.sent))
	}
	mustContain(t, c.sent[0].text, "Привет, Алиса")

	if err := app.handleBeginCallback(c); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if len(c.sent) != 2 {
		t.Fatalf("expected question after begin, got %d messages", len(c.sent))
	}
	mustContain(t, c.sent[1].text, "Вопрос 1 из 5")
	if c.sent[1].opts == nil || c.sent[1].opts.ReplyMarkup == nil || !c.sent[1].opts.ReplyMarkup.ResizeKeyboard {
		t.Fatal("question must carry the answer reply keyboard")
	}

	answers := []string{
		quiz.AnswerNobody,
		quiz.AnswerNobody,
		quiz.AnswerContacts,
		quiz.AnswerEveryone,
		quiz.AnswerNobody,
	}
	for _, ans := range answers {
		c.text = ans
		if !app.Recognizes(c.text) {
			t.Fatalf("answer %q not recognized", ans)
		}
		if err := app.Handle(c); err != nil {
			t.Fatalf("answer %q: %v", ans, err)
		}
	}

	// welcome + q1, then per answer: risk + next question, final answer:
	// risk + report + stats.
	if len(c.sent) != 13 {
		t.Fatalf("expected 13 messages total, got %d", len(c.sent))
	}
	if *pauses != 5 {
		t.Fatalf("expected 5 pauses, got %d", *pauses)
	}

	risk := c.sent[2].text
	mustContain(t, risk, "Ваш ответ:")
	mustContain(t, risk, "НИЗКИЙ РИСК")
	mustContain(t, risk, "Как исправить")
	if c.sent[2].opts == nil || c.sent[2].opts.ReplyMarkup == nil || !c.sent[2].opts.ReplyMarkup.RemoveKeyboard {
		t.Fatal("risk explanation must hide the keyboard")
	}

	rep := c.sent[11].text
	mustContain(t, rep, "ПЕРСОНАЛИЗИРОВАННЫЙ ОТЧЕТ")
	mustContain(t, rep, "7/10 баллов")
	mustContain(t, rep, "СЛАБЫЕ МЕСТА")
	mustContain(t, rep, "🟩🟩🟩🟩🟩🟩🟩⬜⬜⬜")

	stats := c.sent[12].text
	mustContain(t, stats, "СТАТИСТИКА ПРОВЕРКИ")
	// The completed session left the store before aggregates were computed.
	mustContain(t, stats, "лучше чем у 100%")

	if _, ok := app.store.Get(100); ok {
		t.Fatal("session must be deleted after the report")
	}
}

func TestCancelAbortsAudit(t *testing.T) {
	app, _ := newTestApp(t)
	c := newFakeContext(7)

	if err := app.handleStart(c); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := app.handleBeginCallback(c); err != nil {
		t.Fatalf("begin: %v", err)
	}

	c.text = quiz.CancelSentinel
	if !app.Recognizes(c.text) {
		t.Fatal("cancel sentinel must be recognized")
	}
	if err := app.Handle(c); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	last := c.sent[len(c.sent)-1]
	mustContain(t, last.text, "Проверка отменена")
	if last.opts == nil || last.opts.ReplyMarkup == nil || !last.opts.ReplyMarkup.RemoveKeyboard {
		t.Fatal("cancellation must hide the keyboard")
	}
	if _, ok := app.store.Get(7); ok {
		t.Fatal("cancelled session must be removed")
	}
}

func TestAnswerWithoutSessionPromptsStart(t *testing.T) {
	app, _ := newTestApp(t)
	c := newFakeContext(1)

	c.text = quiz.AnswerNobody
	if err := app.Handle(c); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(c.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(c.sent))
	}
	mustContain(t, c.sent[0].text, "/start")
}

func TestBeginWithoutSessionPromptsStart(t *testing.T) {
	app, _ := newTestApp(t)
	c := newFakeContext(2)

	if err := app.handleBeginCallback(c); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if len(c.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(c.sent))
	}
	mustContain(t, c.sent[0].text, "/start")
}

func TestFallbackRepliesCycle(t *testing.T) {
	app, _ := newTestApp(t)
	c := newFakeContext(3)

	for i := 0; i < len(fallbackReplies)+2; i++ {
		c.text = "что-то непонятное"
		if err := app.handleFallback(c); err != nil {
			t.Fatalf("fallback %d: %v", i, err)
		}
	}
	for i, msg := range c.sent {
		want := fallbackReplies[i%len(fallbackReplies)]
		if msg.text != want {
			t.Fatalf("fallback %d = %q, want %q", i, msg.text, want)
		}
	}
}

func TestRecognizesOnlyCatalogAnswers(t *testing.T) {
	app, _ := newTestApp(t)
	for _, ans := range quiz.Answers() {
		if !app.Recognizes(ans) {
			t.Fatalf("expected %q to be recognized", ans)
		}
	}
	if !app.Recognizes(quiz.CancelSentinel) {
		t.Fatal("cancel sentinel must be recognized")
	}
	for _, text := range []string{"", "все", "привет", "/start"} {
		if app.Recognizes(text) {
			t.Fatalf("did not expect %q to be recognized", text)
		}
	}
}

func TestStatsReportsSendErrors(t *testing.T) {
	app, _ := newTestApp(t)
	c := newFakeContext(4)

	disp := tgsender.NewDispatcher(tgsender.Options{QueueSize: 4, Workers: 1})
	if err := disp.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		return errors.New("telegram: Bad Request (400)")
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	disp.Close()
	app.sender = disp

	if err := app.handleStats(c); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(c.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(c.sent))
	}
	mustContain(t, c.sent[0].text, "Ошибок отправки: 1")
}

func TestRestartMidQuizStartsOver(t *testing.T) {
	app, _ := newTestApp(t)
	c := newFakeContext(9)

	if err := app.handleStart(c); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := app.handleBeginCallback(c); err != nil {
		t.Fatalf("begin: %v", err)
	}
	c.text = quiz.AnswerEveryone
	if err := app.Handle(c); err != nil {
		t.Fatalf("answer: %v", err)
	}

	if err := app.handleStart(c); err != nil {
		t.Fatalf("restart: %v", err)
	}
	s, ok := app.store.Get(9)
	if !ok {
		t.Fatal("expected fresh session after restart")
	}
	if s.CurrentIndex != 0 || s.Score != 0 || len(s.Answers) != 0 {
		t.Fatalf("restart must discard progress, got %+v", s)
	}
}
