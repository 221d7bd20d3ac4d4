package router

import (
	"testing"

	tg "github.com/m3rciful/privacybot/core/telegram"
	"github.com/m3rciful/privacybot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the handful of tele.Context methods the text route
// touches. Anything else panics through the embedded nil interface.
type fakeContext struct {
	tele.Context
	sender *tele.User
	chat   *tele.Chat
	text   string
	store  map[string]any
}

func newFakeContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID},
		chat:   &tele.Chat{ID: userID},
		text:   text,
		store:  map[string]any{},
	}
}

func (f *fakeContext) Sender() *tele.User    { return f.sender }
func (f *fakeContext) Chat() *tele.Chat      { return f.chat }
func (f *fakeContext) Text() string          { return f.text }
func (f *fakeContext) Update() tele.Update   { return tele.Update{} }
func (f *fakeContext) Get(key string) any    { return f.store[key] }
func (f *fakeContext) Set(key string, v any) { f.store[key] = v }

type recordingHandler struct {
	calls int
}

func (r *recordingHandler) handler(tele.Context) error {
	r.calls++
	return nil
}

type noAnswers struct{}

func (noAnswers) Recognizes(string) bool      { return false }
func (noAnswers) Handle(tele.Context) error   { return nil }

func buildTextRoute(t *testing.T, isAdmin func(int64) bool) (tele.HandlerFunc, *recordingHandler, *recordingHandler, *recordingHandler) {
	t.Helper()
	stats := &recordingHandler{}
	fallback := &recordingHandler{}
	reject := &recordingHandler{}

	reg := tg.NewRegistry()
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     stats.handler,
		Description: "stats",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.SetTextFallback(fallback.handler)

	routes := TextRoutes(noAnswers{}, reg, TextOptions{
		IsAdmin:       isAdmin,
		OnAdminReject: reject.handler,
	})
	if len(routes) != 1 {
		t.Fatalf("expected 1 text route, got %d", len(routes))
	}
	return routes[0].Handler, stats, fallback, reject
}

func TestBareTextNeverResolvesToCommand(t *testing.T) {
	handler, stats, fallback, reject := buildTextRoute(t, func(int64) bool { return false })

	c := newFakeContext(42, "stats")
	if err := handler(c); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if stats.calls != 0 {
		t.Fatal("bare text must not invoke the admin command handler")
	}
	if reject.calls != 0 {
		t.Fatal("bare text must not even reach the admin gate")
	}
	if fallback.calls != 1 {
		t.Fatalf("expected fallback, got %d calls", fallback.calls)
	}
}

func TestTextRouteCommandKeepsAdminGate(t *testing.T) {
	handler, stats, fallback, reject := buildTextRoute(t, func(int64) bool { return false })

	c := newFakeContext(42, "/stats")
	if err := handler(c); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if stats.calls != 0 {
		t.Fatal("non-admin must not reach the admin command handler")
	}
	if reject.calls != 1 {
		t.Fatalf("expected admin rejection, got %d calls", reject.calls)
	}
	if fallback.calls != 0 {
		t.Fatal("rejected command must not fall through to fallback")
	}
}

func TestTextRouteCommandAllowsAdmin(t *testing.T) {
	handler, stats, _, reject := buildTextRoute(t, func(id int64) bool { return id == 42 })

	c := newFakeContext(42, "/stats")
	if err := handler(c); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if stats.calls != 1 {
		t.Fatalf("expected admin handler call, got %d", stats.calls)
	}
	if reject.calls != 0 {
		t.Fatal("admin must not be rejected")
	}
}

func TestUnmatchedTextFallsThrough(t *testing.T) {
	handler, stats, fallback, _ := buildTextRoute(t, func(int64) bool { return true })

	for _, text := range []string{"version", "start", "привет"} {
		if err := handler(newFakeContext(1, text)); err != nil {
			t.Fatalf("handle %q: %v", text, err)
		}
	}
	if stats.calls != 0 {
		t.Fatal("bare text must never dispatch commands")
	}
	if fallback.calls != 3 {
		t.Fatalf("expected 3 fallback calls, got %d", fallback.calls)
	}
}

func TestAnswersTakePrecedence(t *testing.T) {
	answered := 0
	answers := answerFunc{
		recognizes: func(text string) bool { return text == "да" },
		handle:     func(tele.Context) error { answered++; return nil },
	}

	fallback := &recordingHandler{}
	reg := tg.NewRegistry()
	reg.SetTextFallback(fallback.handler)

	routes := TextRoutes(answers, reg, TextOptions{})
	if err := routes[0].Handler(newFakeContext(1, "да")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if answered != 1 {
		t.Fatalf("expected answer handler, got %d calls", answered)
	}
	if fallback.calls != 0 {
		t.Fatal("recognized answer must not hit the fallback")
	}
}

type answerFunc struct {
	recognizes func(string) bool
	handle     func(tele.Context) error
}

func (a answerFunc) Recognizes(text string) bool  { return a.recognizes(text) }
func (a answerFunc) Handle(c tele.Context) error  { return a.handle(c) }
