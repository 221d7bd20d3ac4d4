package audit

import "github.com/m3rciful/privacybot/internal/report"

// EffectKind enumerates the outbound actions a transition can request.
type EffectKind int

const (
	// EffectWelcome shows the intro screen with the begin button.
	EffectWelcome EffectKind = iota
	// EffectAskQuestion prompts the question at Index with the answer keyboard.
	EffectAskQuestion
	// EffectRisk explains the risk of Choice for the question at Index.
	EffectRisk
	// EffectPause delays before the next effect, giving the user time to read.
	EffectPause
	// EffectReport delivers the final report and closing statistics.
	EffectReport
	// EffectCancelled acknowledges a cancelled audit. No report follows.
	EffectCancelled
	// EffectPromptStart asks the user to run /start; there is no session.
	EffectPromptStart
)

// Effect is one outbound action. Transitions return effect lists instead of
// sending anything themselves, which keeps them testable without a transport.
type Effect struct {
	Kind   EffectKind
	Index  int
	Choice string
	Report *report.Report
}

func welcome() Effect            { return Effect{Kind: EffectWelcome} }
func askQuestion(i int) Effect   { return Effect{Kind: EffectAskQuestion, Index: i} }
func pause() Effect              { return Effect{Kind: EffectPause} }
func cancelled() Effect          { return Effect{Kind: EffectCancelled} }
func promptStart() Effect        { return Effect{Kind: EffectPromptStart} }

func risk(i int, choice string) Effect {
	return Effect{Kind: EffectRisk, Index: i, Choice: choice}
}

func finalReport(r report.Report) Effect {
	return Effect{Kind: EffectReport, Report: &r}
}
