package router

import (
	"strings"
	"time"

	tg "github.com/m3rciful/privacybot/core/telegram"
	"github.com/m3rciful/privacybot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// AnswerHandler routes free-form text that belongs to an in-flight
// conversation, such as quiz answers typed from a reply keyboard.
type AnswerHandler interface {
	// Recognizes reports whether the text should be treated as an answer.
	Recognizes(text string) bool
	Handle(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	// IsAdmin gates admin-only commands reached through the text route,
	// mirroring the check CommandRoutes applies on command endpoints.
	IsAdmin       func(userID int64) bool
	OnAdminReject tele.HandlerFunc

	UnknownText tele.HandlerFunc
}

// TextRoutes builds the OnText route. Routing order: conversation answers
// first, then slash-prefixed command aliases, then the registry fallback.
// Bare text never resolves to a command, so admin handlers stay behind the
// same gate as their command endpoints.
func TextRoutes(answers AnswerHandler, reg *tg.Registry, opts TextOptions) []tg.Route {
	adminOpts := middleware.AdminOptions{
		IsAdmin:  opts.IsAdmin,
		OnReject: opts.OnAdminReject,
	}

	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if answers != nil && answers.Recognizes(text) {
			return handleWithSummary(c, "answer", start, "", "", func() error {
				return answers.Handle(c)
			})
		}

		if reg != nil && strings.HasPrefix(text, "/") {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				h := middleware.WithAdminCheck(adminOpts, struct {
					AdminOnly bool
					Handler   tele.HandlerFunc
				}{cmd.AdminOnly, cmd.Handler})
				return handleWithSummary(c, name, start, "", "", func() error {
					return h(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}
