package world

// ChangeTeam handles a join-team message: re-balances team assignment
// through the same auto-balance rule as the initial join and updates
// the player's character when one is given (§6 "join-team": {name, team,
// character}). The name is not stored: Player has no display-name
// field, and the session id is the routing key.
func (m *Model) ChangeTeam(sessionID string, requestedTeam Team, character string) bool {
	p, ok := m.Players[sessionID]
	if !ok {
		return false
	}
	p.Team = m.ChooseTeam(requestedTeam)
	if character != "" {
		p.Character = character
	}
	return true
}

// UpdateStateFlag applies an update-state toggle if key is on the
// whitelist {invisible, giant} (§4.8 closing note, §6). Unknown keys
// are rejected so a client cannot smuggle arbitrary state mutation.
func (m *Model) UpdateStateFlag(sessionID, key string, value bool) bool {
	p, ok := m.Players[sessionID]
	if !ok {
		return false
	}
	switch key {
	case "invisible":
		p.Flags.Invisible = value
	case "giant":
		p.Flags.Giant = value
	default:
		return false
	}
	return true
}

// IsHost reports whether sessionID is the match's host (first joiner).
func (m *Model) IsHost(sessionID string) bool {
	return sessionID != "" && sessionID == m.HostSessionID
}

// StartGame transitions PhaseWaiting -> PhasePlaying, host-only.
func (m *Model) StartGame(sessionID string) bool {
	if !m.IsHost(sessionID) || m.Phase != PhaseWaiting {
		return false
	}
	m.Phase = PhasePlaying
	return true
}

// EndGame transitions into PhaseEnded, host-only, and determines the
// winner by score (ties have no winner).
func (m *Model) EndGame(sessionID string) (winner Team, hasWinner bool, ok bool) {
	if !m.IsHost(sessionID) || m.Phase == PhaseEnded {
		return "", false, false
	}
	m.Phase = PhaseEnded
	red, blue := m.Scores[TeamRed], m.Scores[TeamBlue]
	if red > blue {
		return TeamRed, true, true
	}
	if blue > red {
		return TeamBlue, true, true
	}
	return "", false, true
}
