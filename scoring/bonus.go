package scoring

import (
	"fmt"
	"strings"
)

type BonusType string

const (
	BonusAutumnChampion   BonusType = "herbstmeister"
	BonusChampion         BonusType = "meister"
	BonusFirstCoachSacked BonusType = "trainer_first"
	BonusTopScorer        BonusType = "topscorer"
	BonusRelegation1      BonusType = "relegation1"
	BonusRelegation2      BonusType = "relegation2"
)

const BonusPointsPerHit = 5

// BonusTypes lists the bonus categories in display order.
var BonusTypes = []BonusType{
	BonusAutumnChampion,
	BonusChampion,
	BonusFirstCoachSacked,
	BonusTopScorer,
	BonusRelegation1,
	BonusRelegation2,
}

func (b BonusType) Valid() bool {
	for _, bonusType := range BonusTypes {
		if b == bonusType {
			return true
		}
	}
	return false
}

func (b BonusType) IsRelegation() bool {
	return b == BonusRelegation1 || b == BonusRelegation2
}

func ParseBonusType(s string) (BonusType, error) {
	bonusType := BonusType(strings.TrimSpace(s))
	if !bonusType.Valid() {
		return "", fmt.Errorf("invalid bonus type %q", s)
	}
	return bonusType, nil
}

func NormalizeValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ParseRelegatedTeams(raw string) map[string]bool {
	teams := make(map[string]bool)
	for _, team := range strings.Split(raw, ",") {
		if normalized := NormalizeValue(team); normalized != "" {
			teams[normalized] = true
		}
	}
	return teams
}

func (t *Tournament) outcomeFor(bonusType BonusType) string {
	switch bonusType {
	case BonusAutumnChampion:
		return NormalizeValue(t.AutumnChampion)
	case BonusChampion:
		return NormalizeValue(t.Champion)
	case BonusFirstCoachSacked:
		return NormalizeValue(t.FirstCoachSacked)
	case BonusTopScorer:
		return NormalizeValue(t.TopScorer)
	}
	panic(fmt.Sprintf("no single outcome for bonus type %q", bonusType))
}

// ScoreBonus awards BonusPointsPerHit per correct pick. A relegated team is only
// credited once even if it was picked in both relegation slots.
func ScoreBonus(tournament *Tournament, predictions []*BonusPrediction) int {
	if tournament == nil {
		return 0
	}
	relegated := ParseRelegatedTeams(tournament.RelegatedTeams)
	counted := make(map[string]bool)
	points := 0
	for _, prediction := range predictions {
		value := NormalizeValue(prediction.Value)
		if value == "" {
			continue
		}
		if !prediction.BonusType.Valid() {
			panic(fmt.Sprintf("invalid bonus type %q", prediction.BonusType))
		}
		if prediction.BonusType.IsRelegation() {
			if relegated[value] && !counted[value] {
				counted[value] = true
				points += BonusPointsPerHit
			}
			continue
		}
		if outcome := tournament.outcomeFor(prediction.BonusType); outcome != "" && value == outcome {
			points += BonusPointsPerHit
		}
	}
	return points
}
