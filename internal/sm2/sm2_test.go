package sm2

import (
	"math"
	"testing"
	"time"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestInitState(t *testing.T) {
	now := date("2020-01-01")
	state := InitState(now)

	if state.EF != 2.5 {
		t.Errorf("Expected initial EF 2.5, got %v", state.EF)
	}
	if state.Interval != 0 || state.Reps != 0 {
		t.Errorf("Expected zero interval and reps, got interval=%d reps=%d", state.Interval, state.Reps)
	}
	if !state.DueAt.Equal(now) {
		t.Errorf("Expected card due immediately at %v, got %v", now, state.DueAt)
	}
	if state.LastReviewedAt != nil {
		t.Error("Expected no last-reviewed timestamp on a fresh card")
	}
}

func TestReviewPerfectProgression(t *testing.T) {
	// Three perfect recalls on days 0, 1 and 7 must yield the interval
	// sequence 1, 6, 17 (round(6 * 2.8)).
	state := InitState(date("2020-01-01"))

	state = Review(state, domain.QualityPerfect, date("2020-01-01"))
	if state.Interval != 1 || state.Reps != 1 {
		t.Fatalf("First review: expected interval=1 reps=1, got interval=%d reps=%d", state.Interval, state.Reps)
	}
	if !state.DueAt.Equal(date("2020-01-02")) {
		t.Errorf("First review: expected due 2020-01-02, got %v", state.DueAt)
	}

	state = Review(state, domain.QualityPerfect, date("2020-01-02"))
	if state.Interval != 6 || state.Reps != 2 {
		t.Fatalf("Second review: expected interval=6 reps=2, got interval=%d reps=%d", state.Interval, state.Reps)
	}
	if !state.DueAt.Equal(date("2020-01-08")) {
		t.Errorf("Second review: expected due 2020-01-08, got %v", state.DueAt)
	}

	state = Review(state, domain.QualityPerfect, date("2020-01-08"))
	if state.Interval < 7 {
		t.Errorf("Third review: expected interval >= 7, got %d", state.Interval)
	}
	if state.Interval != 17 {
		t.Errorf("Third review: expected interval round(6*2.8)=17, got %d", state.Interval)
	}
	if math.Abs(state.EF-2.8) > 1e-9 {
		t.Errorf("Third review: expected EF 2.8, got %v", state.EF)
	}
	if !state.DueAt.Equal(date("2020-01-25")) {
		t.Errorf("Third review: expected due 2020-01-25, got %v", state.DueAt)
	}
}

func TestReviewLapseResets(t *testing.T) {
	now := date("2020-01-01")
	prev := domain.ReviewState{EF: 2.5, Interval: 30, Reps: 4, DueAt: now}

	for q := domain.QualityBlackout; q < domain.QualityHard; q++ {
		next := Review(prev, q, now)
		if next.Reps != 0 {
			t.Errorf("q=%d: expected reps reset to 0, got %d", q, next.Reps)
		}
		if next.Interval != 1 {
			t.Errorf("q=%d: expected interval 1, got %d", q, next.Interval)
		}
		if !next.DueAt.Equal(date("2020-01-02")) {
			t.Errorf("q=%d: expected due next day, got %v", q, next.DueAt)
		}
	}
}

func TestReviewEFFloor(t *testing.T) {
	now := date("2020-01-01")
	state := domain.ReviewState{EF: 1.3, Interval: 1, Reps: 1, DueAt: now}

	// Repeated blackouts must never push EF below 1.3.
	for i := 0; i < 10; i++ {
		state = Review(state, domain.QualityBlackout, now)
		if state.EF < 1.3 {
			t.Fatalf("Iteration %d: EF %v fell below the 1.3 floor", i, state.EF)
		}
	}
}

func TestReviewDueDateNeverInPast(t *testing.T) {
	now := date("2020-06-15")
	for q := domain.QualityBlackout; q <= domain.QualityPerfect; q++ {
		next := Review(InitState(now), q, now)
		if next.DueAt.Before(now) {
			t.Errorf("q=%d: due date %v is before now", q, next.DueAt)
		}
		if next.Interval < 1 {
			t.Errorf("q=%d: interval %d is below 1", q, next.Interval)
		}
	}
}

func TestReviewZeroIntervalGuard(t *testing.T) {
	// reps >= 2 with a stale zero interval would round to 0; the guard
	// must force a one-day interval instead.
	now := date("2020-01-01")
	prev := domain.ReviewState{EF: 1.3, Interval: 0, Reps: 2, DueAt: now}

	next := Review(prev, domain.QualityHard, now)
	if next.Interval != 1 {
		t.Errorf("Expected interval forced to 1, got %d", next.Interval)
	}
}

func TestReviewDoesNotMutatePrev(t *testing.T) {
	now := date("2020-01-01")
	prev := domain.ReviewState{EF: 2.5, Interval: 6, Reps: 2, DueAt: now}
	before := prev

	Review(prev, domain.QualityPerfect, now)

	if prev != before {
		t.Errorf("Expected prev state unchanged, got %+v", prev)
	}
}

func TestReviewSetsLastReviewedAt(t *testing.T) {
	now := date("2020-03-10")
	next := Review(InitState(now), domain.QualityGood, now)
	if next.LastReviewedAt == nil || !next.LastReviewedAt.Equal(now) {
		t.Errorf("Expected last reviewed at %v, got %v", now, next.LastReviewedAt)
	}
}
