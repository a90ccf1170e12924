package world

import (
	"testing"
	"time"

	"goalline/server/internal/telemetry"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestModelWithClock(t *testing.T, now *time.Time) *Model {
	t.Helper()
	return New(Deps{Clock: telemetry.ClockFunc(func() time.Time { return *now })})
}

func TestAdjudicateGoalAwardsAndAttributesAssist(t *testing.T) {
	now := time.Now()
	m := newTestModelWithClock(t, &now)

	scorer := m.AddPlayer("scorer", TeamRed, "")
	assist := m.AddPlayer("assist", TeamRed, "")
	_ = scorer
	_ = assist
	m.Ball.LastTouchID = "scorer"
	m.Ball.SecondLastTouchID = "assist"
	m.Ball.Position = mgl64.Vec3{12, 1, 0}

	result := m.AdjudicateGoal()

	if !result.Scored || result.ScoringTeam != TeamRed {
		t.Fatalf("expected red goal, got %+v", result)
	}
	if result.ScorerID != "scorer" || result.AssistID != "assist" {
		t.Fatalf("expected scorer/assist attribution, got %+v", result)
	}
	if m.Scores[TeamRed] != 1 {
		t.Fatalf("expected red score 1, got %d", m.Scores[TeamRed])
	}
}

func TestAdjudicateGoalNoAssistAcrossTeams(t *testing.T) {
	now := time.Now()
	m := newTestModelWithClock(t, &now)

	m.AddPlayer("scorer", TeamRed, "")
	m.AddPlayer("opponent", TeamBlue, "")
	m.Ball.LastTouchID = "scorer"
	m.Ball.SecondLastTouchID = "opponent"
	m.Ball.Position = mgl64.Vec3{-12, 1, 0}

	result := m.AdjudicateGoal()

	if result.ScoringTeam != TeamBlue {
		t.Fatalf("expected blue goal for negative x, got %v", result.ScoringTeam)
	}
	if result.AssistID != "" {
		t.Fatalf("expected no cross-team assist, got %q", result.AssistID)
	}
}

func TestAdjudicateGoalRejectsWithinCooldown(t *testing.T) {
	now := time.Now()
	m := newTestModelWithClock(t, &now)
	m.AddPlayer("scorer", TeamRed, "")
	m.Ball.LastTouchID = "scorer"
	m.Ball.Position = mgl64.Vec3{12, 1, 0}

	first := m.AdjudicateGoal()
	if !first.Scored {
		t.Fatal("expected first goal to score")
	}

	now = now.Add(1 * time.Second)
	m.Ball.Position = mgl64.Vec3{12, 1, 0}
	second := m.AdjudicateGoal()
	if second.Scored {
		t.Fatal("expected second goal within cooldown to be rejected")
	}
	if m.Scores[TeamRed] != 1 {
		t.Fatalf("expected score unchanged at 1, got %d", m.Scores[TeamRed])
	}
}

func TestAdjudicateGoalAllowedAfterCooldownElapses(t *testing.T) {
	now := time.Now()
	m := newTestModelWithClock(t, &now)
	m.AddPlayer("scorer", TeamRed, "")
	m.Ball.LastTouchID = "scorer"
	m.Ball.Position = mgl64.Vec3{12, 1, 0}

	m.AdjudicateGoal()

	now = now.Add(GoalCooldown + time.Second)
	second := m.AdjudicateGoal()
	if !second.Scored {
		t.Fatal("expected goal allowed after cooldown elapses")
	}
	if m.Scores[TeamRed] != 2 {
		t.Fatalf("expected score 2, got %d", m.Scores[TeamRed])
	}
}

func TestAdjudicateGoalRejectsOutsideGoalWidth(t *testing.T) {
	now := time.Now()
	m := newTestModelWithClock(t, &now)
	m.Ball.Position = mgl64.Vec3{12, 1, 3}

	result := m.AdjudicateGoal()
	if result.Scored {
		t.Fatal("expected no goal when |z| exceeds goal width")
	}
}

func TestAdjudicateGoalRejectsAboveCrossbar(t *testing.T) {
	now := time.Now()
	m := newTestModelWithClock(t, &now)
	m.Ball.Position = mgl64.Vec3{12, 5, 0}

	result := m.AdjudicateGoal()
	if result.Scored {
		t.Fatal("expected no goal when ball is above the crossbar")
	}
}
