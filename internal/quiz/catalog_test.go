package quiz

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 5 {
		t.Fatalf("question count = %d, expected 5", c.Len())
	}
	if c.MaxPerQuestion() != 2 {
		t.Fatalf("max per question = %d, expected 2", c.MaxPerQuestion())
	}
	if c.MaxScore() != 10 {
		t.Fatalf("max score = %d, expected 10", c.MaxScore())
	}
	for i := 0; i < c.Len(); i++ {
		q, ok := c.ByIndex(i)
		if !ok {
			t.Fatalf("question %d missing", i)
		}
		got, pos, ok := c.ByID(q.ID)
		if !ok || pos != i || got.Prompt != q.Prompt {
			t.Fatalf("ByID(%q) = pos %d, expected %d", q.ID, pos, i)
		}
	}
	if _, ok := c.ByIndex(c.Len()); ok {
		t.Fatal("ByIndex past the end should fail")
	}
}

func TestPointsTable(t *testing.T) {
	c := Default()
	cases := map[string]int{
		AnswerEveryone: 0,
		AnswerContacts: 1,
		AnswerNobody:   2,
	}
	for choice, want := range cases {
		got, ok := c.PointsFor(choice)
		if !ok || got != want {
			t.Fatalf("PointsFor(%q) = %d/%v, expected %d", choice, got, ok, want)
		}
	}
	if _, ok := c.PointsFor(CancelSentinel); ok {
		t.Fatal("cancel sentinel must not score")
	}
	if c.IsAnswer("что-то ещё") {
		t.Fatal("arbitrary text must not be an answer")
	}
}

func TestLevelFallback(t *testing.T) {
	c := Default()
	zero := c.LevelFor(0)
	for _, score := range []int{-1, 11, 100} {
		if got := c.LevelFor(score); got != zero {
			t.Fatalf("LevelFor(%d) = %+v, expected the level for 0", score, got)
		}
	}
	if top := c.LevelFor(10); top.Name != "🎉 ИДЕАЛЬНО" {
		t.Fatalf("LevelFor(10) = %+v", top)
	}
}

func TestNewRejectsBrokenDefinitions(t *testing.T) {
	points := map[string]int{AnswerEveryone: 0, AnswerContacts: 1, AnswerNobody: 2}
	levels := map[int]Level{0: {Name: "zero"}, 1: {Name: "one"}, 2: {Name: "two"}}
	valid := Question{
		ID:     "q1",
		Prompt: "?",
		Risks: map[string]string{
			AnswerEveryone: "a", AnswerContacts: "b", AnswerNobody: "c",
		},
		Remediation: "fix",
	}

	if _, err := New(nil, points, levels); err == nil {
		t.Fatal("empty question list accepted")
	}

	missingRisk := valid
	missingRisk.Risks = map[string]string{AnswerEveryone: "a", AnswerContacts: "b"}
	if _, err := New([]Question{missingRisk}, points, levels); err == nil {
		t.Fatal("question with incomplete risk map accepted")
	}

	extraRisk := valid
	extraRisk.Risks = map[string]string{
		AnswerEveryone: "a", AnswerContacts: "b", AnswerNobody: "c", "Друзья": "d",
	}
	if _, err := New([]Question{extraRisk}, points, levels); err == nil {
		t.Fatal("question with non-canonical risk key accepted")
	}

	if _, err := New([]Question{valid, valid}, points, levels); err == nil {
		t.Fatal("duplicate question id accepted")
	}

	gappyLevels := map[int]Level{0: {Name: "zero"}, 2: {Name: "two"}}
	if _, err := New([]Question{valid}, points, gappyLevels); err == nil {
		t.Fatal("level table with a gap accepted")
	}
}
