package archive

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/m3rciful/privacybot/internal/quiz"
	"github.com/m3rciful/privacybot/internal/report"
)

type fakeDB struct {
	execQuery string
	execArg   interface{}
	execErr   error

	getQuery string
	getArgs  []interface{}
	getErr   error
	counters Counters
}

func (f *fakeDB) NamedExecContext(_ context.Context, query string, arg interface{}) (sql.Result, error) {
	f.execQuery = query
	f.execArg = arg
	return nil, f.execErr
}

func (f *fakeDB) GetContext(_ context.Context, dest interface{}, query string, args ...interface{}) error {
	f.getQuery = query
	f.getArgs = args
	if f.getErr != nil {
		return f.getErr
	}
	*(dest.(*Counters)) = f.counters
	return nil
}

func TestFromReport(t *testing.T) {
	started := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	rep := &report.Report{
		ChatID:      42,
		Username:    "alice",
		DisplayName: "Alice",
		Score:       7,
		MaxScore:    10,
		Level:       quiz.Level{Name: "⚠️ НОРМАЛЬНО"},
		StartedAt:   started,
		FinishedAt:  started.Add(95 * time.Second),
		Duration:    95 * time.Second,
	}

	res := FromReport(rep)
	if res.ChatID != 42 || res.Score != 7 || res.MaxScore != 10 {
		t.Fatalf("result = %+v", res)
	}
	if res.Level != "⚠️ НОРМАЛЬНО" {
		t.Fatalf("level = %q", res.Level)
	}
	if res.DurationMS != 95000 {
		t.Fatalf("duration_ms = %d", res.DurationMS)
	}
}

func TestSave(t *testing.T) {
	db := &fakeDB{}
	r := &Recorder{db: db}

	res := Result{ChatID: 1, Score: 10, MaxScore: 10, Level: "top"}
	if err := r.Save(context.Background(), res); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(db.execQuery, "INSERT INTO audit_results") {
		t.Fatalf("query = %q", db.execQuery)
	}
	got, ok := db.execArg.(Result)
	if !ok || got.ChatID != 1 {
		t.Fatalf("arg = %#v", db.execArg)
	}

	db.execErr = errors.New("connection reset")
	if err := r.Save(context.Background(), res); err == nil {
		t.Fatal("expected wrapped insert error")
	}
}

func TestCountersAt(t *testing.T) {
	db := &fakeDB{counters: Counters{Total: 12, Today: 3}}
	r := &Recorder{db: db}

	now := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	c, err := r.CountersAt(context.Background(), now)
	if err != nil {
		t.Fatalf("counters: %v", err)
	}
	if c.Total != 12 || c.Today != 3 {
		t.Fatalf("counters = %+v", c)
	}
	if len(db.getArgs) != 1 {
		t.Fatalf("args = %v", db.getArgs)
	}
	midnight, ok := db.getArgs[0].(time.Time)
	if !ok || !midnight.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("midnight arg = %v", db.getArgs[0])
	}
}
