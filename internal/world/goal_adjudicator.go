package world

import "time"

// GoalResult reports the outcome of one GoalAdjudicator pass.
type GoalResult struct {
	Scored     bool
	ScoringTeam Team
	ScorerID   string
	AssistID   string
}

// AdjudicateGoal runs after BoundaryEnforcer (§4.7). A goal is awarded
// iff the cooldown has elapsed and the ball is past the goal line,
// inside the goal width and below the crossbar. On award it attributes
// goal/assist from touch history and starts the reset grace timer.
func (m *Model) AdjudicateGoal() GoalResult {
	now := m.clock.Now()
	if m.haveGoal && now.Sub(m.lastGoalTime) < GoalCooldown {
		return GoalResult{}
	}

	pos := m.Ball.Position
	if absf(pos.X()) <= GoalLineX+BallRadius {
		return GoalResult{}
	}
	if absf(pos.Z()) >= GoalHalfZ {
		return GoalResult{}
	}
	if pos.Y() >= GoalHeight {
		return GoalResult{}
	}

	m.lastGoalTime = now
	m.haveGoal = true

	scoringTeam := TeamBlue
	if pos.X() > 0 {
		scoringTeam = TeamRed
	}
	m.Scores[scoringTeam]++

	result := GoalResult{Scored: true, ScoringTeam: scoringTeam}

	if scorer, ok := m.Players[m.Ball.LastTouchID]; ok {
		scorer.Stats.Goals++
		result.ScorerID = scorer.SessionID

		if assist, ok := m.Players[m.Ball.SecondLastTouchID]; ok &&
			assist.SessionID != scorer.SessionID && assist.Team == scorer.Team {
			assist.Stats.Assists++
			result.AssistID = assist.SessionID
		}
	}

	m.goalResetPending = true
	m.goalResetAtTick = m.CurrentTick + uint64(GoalResetGrace/FixedSimDuration())

	m.emit(EventKindGoalScored, GoalScoredPayload{
		ScoringTeam: scoringTeam,
		ScorerID:    result.ScorerID,
		AssistID:    result.AssistID,
		RedScore:    m.Scores[TeamRed],
		BlueScore:   m.Scores[TeamBlue],
	})

	return result
}

// PollGoalReset reports whether the scheduled post-goal reset grace
// period has elapsed, and clears the pending flag when it fires.
func (m *Model) PollGoalReset() bool {
	if !m.goalResetPending || m.CurrentTick < m.goalResetAtTick {
		return false
	}
	m.goalResetPending = false
	m.emit(EventKindGameReset, nil)
	return true
}

// LastGoalAt exposes the timestamp of the most recent goal, for tests.
func (m *Model) LastGoalAt() (time.Time, bool) {
	return m.lastGoalTime, m.haveGoal
}
