// Package quiz holds the static privacy audit catalog: the ordered question
// list, the answer scoring table, and the score-to-level mapping.
package quiz

import "fmt"

// Canonical answer strings accepted for every question. Every keyboard,
// scoring table, and risk map is keyed by these exact values.
const (
	AnswerEveryone = "Все"
	AnswerContacts = "Мои контакты"
	AnswerNobody   = "Никто"
)

// CancelSentinel aborts an audit when received instead of an answer.
const CancelSentinel = "❌ Отмена"

// Question is a single privacy check. Risks must carry an explanation for
// each canonical answer.
type Question struct {
	ID          string
	Prompt      string
	Risks       map[string]string
	Remediation string
}

// Level describes a protection grade resolved from the final score.
type Level struct {
	Name        string
	Color       string
	Description string
}

// Catalog is the immutable audit definition, loaded once at process start.
type Catalog struct {
	questions      []Question
	byID           map[string]int
	points         map[string]int
	levels         map[int]Level
	maxPerQuestion int
}

// Answers returns the canonical answers in keyboard order.
func Answers() []string {
	return []string{AnswerEveryone, AnswerContacts, AnswerNobody}
}

// New validates the catalog definition and builds lookup tables.
func New(questions []Question, points map[string]int, levels map[int]Level) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz: empty question list")
	}
	canonical := Answers()
	if len(points) != len(canonical) {
		return nil, fmt.Errorf("quiz: points table must cover exactly the canonical answers")
	}
	maxPerQuestion := 0
	for _, a := range canonical {
		p, ok := points[a]
		if !ok {
			return nil, fmt.Errorf("quiz: points table is missing answer %q", a)
		}
		if p < 0 {
			return nil, fmt.Errorf("quiz: negative points for answer %q", a)
		}
		if p > maxPerQuestion {
			maxPerQuestion = p
		}
	}

	byID := make(map[string]int, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("quiz: question %d has empty id", i)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("quiz: duplicate question id %q", q.ID)
		}
		if len(q.Risks) != len(canonical) {
			return nil, fmt.Errorf("quiz: question %q risk map must cover exactly the canonical answers", q.ID)
		}
		for _, a := range canonical {
			if q.Risks[a] == "" {
				return nil, fmt.Errorf("quiz: question %q has no risk text for answer %q", q.ID, a)
			}
		}
		byID[q.ID] = i
	}

	maxScore := maxPerQuestion * len(questions)
	for score := 0; score <= maxScore; score++ {
		if _, ok := levels[score]; !ok {
			return nil, fmt.Errorf("quiz: no level defined for score %d", score)
		}
	}

	return &Catalog{
		questions:      questions,
		byID:           byID,
		points:         points,
		levels:         levels,
		maxPerQuestion: maxPerQuestion,
	}, nil
}

// MustNew is New for compiled-in definitions.
func MustNew(questions []Question, points map[string]int, levels map[int]Level) *Catalog {
	c, err := New(questions, points, levels)
	if err != nil {
		panic(err)
	}
	return c
}

// Len reports the number of questions.
func (c *Catalog) Len() int { return len(c.questions) }

// ByIndex returns the question at position i in declaration order.
func (c *Catalog) ByIndex(i int) (Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[i], true
}

// ByID returns a question together with its position.
func (c *Catalog) ByID(id string) (Question, int, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, 0, false
	}
	return c.questions[i], i, true
}

// PointsFor resolves the score value of a canonical answer.
func (c *Catalog) PointsFor(choice string) (int, bool) {
	p, ok := c.points[choice]
	return p, ok
}

// IsAnswer reports whether text is one of the canonical answers.
func (c *Catalog) IsAnswer(text string) bool {
	_, ok := c.points[text]
	return ok
}

// MaxPerQuestion is the highest score a single answer can earn.
func (c *Catalog) MaxPerQuestion() int { return c.maxPerQuestion }

// MaxScore is the highest total score an audit can reach.
func (c *Catalog) MaxScore() int { return c.maxPerQuestion * len(c.questions) }

// LevelFor resolves a final score to its level. Scores outside [0, MaxScore]
// fall back to the entry for 0; the defensive default is part of the contract.
func (c *Catalog) LevelFor(score int) Level {
	if lvl, ok := c.levels[score]; ok {
		return lvl
	}
	return c.levels[0]
}
