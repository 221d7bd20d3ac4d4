package bot

import (
	"fmt"
	"time"

	"github.com/m3rciful/privacybot/core/logger"
	tghelpers "github.com/m3rciful/privacybot/core/telegram/helpers"
	"github.com/m3rciful/privacybot/internal/archive"
	"github.com/m3rciful/privacybot/internal/audit"
	"github.com/m3rciful/privacybot/internal/quiz"

	tele "gopkg.in/telebot.v4"
	"log/slog"
)

func senderName(c tele.Context) (username, displayName string) {
	user := c.Sender()
	if user == nil {
		return "", ""
	}
	displayName = user.FirstName
	if displayName == "" {
		displayName = "Пользователь"
	}
	return user.Username, displayName
}

func (a *App) handleStart(c tele.Context) error {
	username, displayName := senderName(c)
	effects := a.machine.Start(c.Chat().ID, username, displayName)
	return a.execute(c, effects)
}

func (a *App) handleBeginCallback(c tele.Context) error {
	effects := a.machine.Begin(c.Chat().ID)
	return a.execute(c, effects)
}

// Recognizes reports whether the text is a quiz answer or the cancel button.
func (a *App) Recognizes(text string) bool {
	return a.machine.Catalog().IsAnswer(text) || text == quiz.CancelSentinel
}

// Handle processes a recognized answer through the state machine.
func (a *App) Handle(c tele.Context) error {
	effects := a.machine.Submit(c.Chat().ID, c.Text())
	return a.execute(c, effects)
}

func (a *App) handleFallback(c tele.Context) error {
	idx := a.fallbackSeq.Add(1) - 1
	reply := fallbackReplies[idx%uint64(len(fallbackReplies))]
	return tghelpers.SendText(c, reply, &tele.SendOptions{ReplyMarkup: answerKeyboard()})
}

func (a *App) handleStats(c tele.Context) error {
	now := time.Now()
	gen := a.machine.Generator()
	stats := a.currentStats(now)

	var counters *archive.Counters
	if a.recorder != nil {
		ctx := tghelpers.BuildContext(c)
		cs, err := a.recorder.CountersAt(ctx, now)
		if err != nil {
			logger.Warn(ctx, "db", "archive.counters_failed",
				slog.String("err", err.Error()),
			)
		} else {
			counters = &cs
		}
	}

	text := renderAdminStats(stats, gen.Catalog.MaxScore(), now.Sub(a.startedAt), a.sendErrors(), counters)
	return tghelpers.SendHTML(c, text)
}

func (a *App) handleVersion(c tele.Context) error {
	return tghelpers.SendHTML(c, renderVersion())
}

func (a *App) handleAdminReject(c tele.Context) error {
	return tghelpers.SendHTML(c, adminRefusalText)
}

// execute performs the outbound actions a transition produced, in order.
// Ordered sequences (risk, pause, next question or report) are sent
// synchronously so they cannot interleave on the wire; standalone messages
// go through the async sender.
func (a *App) execute(c tele.Context, effects []audit.Effect) error {
	catalog := a.machine.Catalog()
	for _, eff := range effects {
		switch eff.Kind {
		case audit.EffectWelcome:
			_, displayName := senderName(c)
			if err := tghelpers.SendHTML(c, renderWelcome(displayName), beginKeyboard()); err != nil {
				return err
			}
		case audit.EffectAskQuestion:
			q, ok := catalog.ByIndex(eff.Index)
			if !ok {
				return fmt.Errorf("bot: no question at index %d", eff.Index)
			}
			text := renderQuestion(q, eff.Index, catalog.Len())
			if err := sendHTMLSync(c, text, answerKeyboard()); err != nil {
				return err
			}
		case audit.EffectRisk:
			q, ok := catalog.ByIndex(eff.Index)
			if !ok {
				return fmt.Errorf("bot: no question at index %d", eff.Index)
			}
			if err := sendHTMLSync(c, renderRisk(q, eff.Choice), removeKeyboard()); err != nil {
				return err
			}
		case audit.EffectPause:
			a.sleep(a.answerPause)
		case audit.EffectReport:
			if err := sendHTMLSync(c, renderReport(eff.Report), removeKeyboard()); err != nil {
				return err
			}
			if err := sendHTMLSync(c, renderReportStats(eff.Report.Stats, eff.Report.MaxScore), nil); err != nil {
				return err
			}
			a.archiveReport(c, eff)
		case audit.EffectCancelled:
			if err := tghelpers.SendHTML(c, cancelledText, removeKeyboard()); err != nil {
				return err
			}
		case audit.EffectPromptStart:
			if err := tghelpers.SendText(c, promptStartText); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *App) archiveReport(c tele.Context, eff audit.Effect) {
	if a.recorder == nil || eff.Report == nil {
		return
	}
	ctx := tghelpers.BuildContext(c)
	res := archive.FromReport(eff.Report)
	if err := a.recorder.Save(ctx, res); err != nil {
		logger.Error(ctx, "db", "archive.save_failed",
			slog.Int64("chat_id", res.ChatID),
			slog.String("err", err.Error()),
		)
	}
}

func sendHTMLSync(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	return c.Send(text, &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: markup})
}
