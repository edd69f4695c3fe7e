package achievement

import (
	"testing"
	"time"

	"career-pods/internal/domain/progress"
)

func rows(total, achieved int) []progress.Record {
	now := time.Now().UTC()
	out := make([]progress.Record, 0, total)
	for i := 0; i < total; i++ {
		r := progress.Record{CurrentLevel: 3, TargetLevel: 5}
		if i < achieved {
			t := now
			r.AchievedAt = &t
			r.CurrentLevel = 5
		}
		out = append(out, r)
	}
	return out
}

func TestEvaluate_Empty(t *testing.T) {
	s := Evaluate(nil)
	if s.CompletionPercentage != 0 {
		t.Fatalf("expected 0%%, got %d", s.CompletionPercentage)
	}
	if s.Badge != nil {
		t.Fatalf("expected no badge, got %v", s.Badge)
	}
}

func TestEvaluate_HalfwayAtFourTracked(t *testing.T) {
	s := Evaluate(rows(4, 2))
	if s.CompletionPercentage != 50 {
		t.Fatalf("expected 50%%, got %d", s.CompletionPercentage)
	}
	if s.Badge == nil || s.Badge.ID != BadgeHalfway {
		t.Fatalf("expected halfway badge, got %v", s.Badge)
	}
}

func TestEvaluate_MasterNeedsFiveTracked(t *testing.T) {
	// 4/4 is 100% but below the five-skill floor: halfway, not master.
	s := Evaluate(rows(4, 4))
	if s.CompletionPercentage != 100 {
		t.Fatalf("expected 100%%, got %d", s.CompletionPercentage)
	}
	if s.Badge == nil || s.Badge.ID != BadgeHalfway {
		t.Fatalf("expected halfway badge, got %v", s.Badge)
	}

	s = Evaluate(rows(5, 5))
	if s.Badge == nil || s.Badge.ID != BadgeMaster {
		t.Fatalf("expected master badge, got %v", s.Badge)
	}
	if s.Badge.Name != "Master Achiever" {
		t.Fatalf("unexpected badge name %q", s.Badge.Name)
	}
}

func TestEvaluate_NoBadgeBelowHalf(t *testing.T) {
	s := Evaluate(rows(5, 2))
	if s.CompletionPercentage != 40 {
		t.Fatalf("expected 40%%, got %d", s.CompletionPercentage)
	}
	if s.Badge != nil {
		t.Fatalf("expected no badge, got %v", s.Badge)
	}
}

func TestEvaluate_Rounding(t *testing.T) {
	// 1/3 rounds to 33, 2/3 rounds to 67.
	if got := Evaluate(rows(3, 1)).CompletionPercentage; got != 33 {
		t.Fatalf("expected 33%%, got %d", got)
	}
	if got := Evaluate(rows(3, 2)).CompletionPercentage; got != 67 {
		t.Fatalf("expected 67%%, got %d", got)
	}
	// 67% crosses the halfway threshold.
	if b := Evaluate(rows(3, 2)).Badge; b == nil || b.ID != BadgeHalfway {
		t.Fatalf("expected halfway badge, got %v", b)
	}
}

func TestEvaluate_PureAndRepeatable(t *testing.T) {
	in := rows(5, 5)
	first := Evaluate(in)
	second := Evaluate(in)
	if first.CompletionPercentage != second.CompletionPercentage {
		t.Fatalf("evaluate not repeatable: %d vs %d", first.CompletionPercentage, second.CompletionPercentage)
	}
	if (first.Badge == nil) != (second.Badge == nil) {
		t.Fatalf("evaluate not repeatable on badge")
	}
	if first.Badge != nil && first.Badge.ID != second.Badge.ID {
		t.Fatalf("evaluate not repeatable on badge id")
	}
}
