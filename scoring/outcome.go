package scoring

type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeTendency
	OutcomeGoalDifference
	OutcomeExact
)

var outcomePoints = map[Outcome]int{
	OutcomeExact:          4,
	OutcomeGoalDifference: 3,
	OutcomeTendency:       2,
	OutcomeMiss:           0,
}

// Points is the only place the point scale is defined.
func (o Outcome) Points() int {
	return outcomePoints[o]
}

func (o Outcome) String() string {
	switch o {
	case OutcomeExact:
		return "exact"
	case OutcomeGoalDifference:
		return "goal_difference"
	case OutcomeTendency:
		return "tendency"
	default:
		return "miss"
	}
}

// tendency returns 1 for a home win, 0 for a draw and -1 for an away win.
func tendency(home, away int) int {
	switch {
	case home > away:
		return 1
	case home < away:
		return -1
	default:
		return 0
	}
}

func Classify(predHome, predAway, actualHome, actualAway int) Outcome {
	if predHome == actualHome && predAway == actualAway {
		return OutcomeExact
	}
	if predHome-predAway == actualHome-actualAway {
		return OutcomeGoalDifference
	}
	if tendency(predHome, predAway) == tendency(actualHome, actualAway) {
		return OutcomeTendency
	}
	return OutcomeMiss
}

// ClassifyPrediction returns false if either the result or the prediction is incomplete.
func ClassifyPrediction(match *Match, prediction *Prediction) (Outcome, bool) {
	if match == nil || !match.HasResult() || !prediction.IsComplete() {
		return OutcomeMiss, false
	}
	return Classify(*prediction.PredHome, *prediction.PredAway, *match.HomeScore, *match.AwayScore), true
}

func ScoreMatch(match *Match, prediction *Prediction) int {
	outcome, ok := ClassifyPrediction(match, prediction)
	if !ok {
		return 0
	}
	return outcome.Points()
}
