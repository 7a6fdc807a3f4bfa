package scoring

import "time"

// IsMatchLocked reports whether predictions for the match are closed. The same
// boundary decides when other users' predictions and points become visible.
func IsMatchLocked(match *Match, now time.Time) bool {
	return !now.Before(match.Kickoff)
}

func (m *Match) IsRevealed(now time.Time) bool {
	return IsMatchLocked(m, now)
}

// IsBonusRevealed is false as long as no season start is configured.
func IsBonusRevealed(tournament *Tournament, now time.Time) bool {
	if tournament == nil || tournament.SeasonStart == nil {
		return false
	}
	return !now.Before(*tournament.SeasonStart)
}

// IsBonusRevealDue reports whether the bonus reveal happens within the given duration.
func IsBonusRevealDue(tournament *Tournament, now time.Time, within time.Duration) bool {
	if tournament == nil || tournament.SeasonStart == nil || IsBonusRevealed(tournament, now) {
		return false
	}
	return tournament.SeasonStart.Sub(now) <= within
}
