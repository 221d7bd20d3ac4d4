// Package audit drives a single chat's journey through the privacy check:
// question, answer, risk explanation, next question, report. Transitions are
// pure with respect to the transport; they mutate the session store and return
// the effects the dispatcher should emit.
package audit

import (
	"time"

	"github.com/m3rciful/privacybot/internal/quiz"
	"github.com/m3rciful/privacybot/internal/report"
	"github.com/m3rciful/privacybot/internal/session"
)

// Machine advances audit sessions. All transitions for one chat run under the
// store's per-chat lock, so a slow outbound send can never let a second answer
// sneak in and double-advance the session.
type Machine struct {
	catalog *quiz.Catalog
	store   *session.Store
	gen     *report.Generator
	now     func() time.Time
}

// New builds a machine over the given catalog and store.
func New(catalog *quiz.Catalog, store *session.Store) *Machine {
	return &Machine{
		catalog: catalog,
		store:   store,
		gen:     &report.Generator{Catalog: catalog, Store: store},
		now:     time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (m *Machine) WithClock(now func() time.Time) *Machine {
	m.now = now
	return m
}

// Catalog exposes the audit definition for rendering.
func (m *Machine) Catalog() *quiz.Catalog { return m.catalog }

// Generator exposes the report generator for aggregate queries.
func (m *Machine) Generator() *report.Generator { return m.gen }

// Start opens a fresh session for the chat, discarding any in-progress one,
// and requests the welcome screen.
func (m *Machine) Start(chatID int64, username, displayName string) []Effect {
	m.store.Start(chatID, username, displayName, m.now())
	return []Effect{welcome()}
}

// Begin moves an existing session from the welcome screen to its current
// question. Without a session it asks the user to /start.
func (m *Machine) Begin(chatID int64) []Effect {
	var effects []Effect
	m.store.Do(chatID, func(s *session.Session) {
		if s == nil {
			effects = []Effect{promptStart()}
			return
		}
		if s.Completed(m.catalog.Len()) {
			return
		}
		effects = []Effect{askQuestion(s.CurrentIndex)}
	})
	return effects
}

// Submit records an answer or handles the cancel sentinel.
//
// The risk explanation for the answered question is always emitted, even on
// the final answer, before the report. The session leaves the store before
// aggregate statistics are computed, so a report never counts itself.
func (m *Machine) Submit(chatID int64, choice string) []Effect {
	var effects []Effect
	m.store.Do(chatID, func(s *session.Session) {
		if s == nil {
			effects = []Effect{promptStart()}
			return
		}

		if choice == quiz.CancelSentinel {
			m.store.Delete(chatID)
			effects = []Effect{cancelled()}
			return
		}

		points, ok := m.catalog.PointsFor(choice)
		if !ok {
			// The dispatcher only routes canonical answers here; anything
			// else never reaches the machine.
			return
		}

		index := s.CurrentIndex
		q, ok := m.catalog.ByIndex(index)
		if !ok {
			return
		}

		now := m.now()
		s.Record(q.ID, choice, points, now)
		effects = []Effect{risk(index, choice), pause()}

		if s.Completed(m.catalog.Len()) {
			rep := m.gen.Build(s, now)
			m.store.Delete(chatID)
			rep.Stats = m.gen.Aggregates(rep.Score, now)
			effects = append(effects, finalReport(rep))
			return
		}
		effects = append(effects, askQuestion(s.CurrentIndex))
	})
	return effects
}
