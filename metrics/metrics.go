package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var PredictionsSavedCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "tippspiel_predictions_saved_total",
		Help: "Number of match predictions saved",
	},
)

var PredictionsLockedCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "tippspiel_predictions_locked_total",
		Help: "Number of match predictions skipped because the match had kicked off",
	},
)

var BonusPredictionsSavedCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "tippspiel_bonus_predictions_saved_total",
		Help: "Number of bonus predictions saved",
	},
)

var GroupsCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tippspiel_groups_created_total",
	Help: "Number of groups created",
})

var GroupJoinsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tippspiel_group_joins_total",
	Help: "Number of users that joined a group by join code",
})

var MatchResultsAppliedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tippspiel_match_results_applied_total",
	Help: "The number of match results applied by source",
}, []string{"source"})

var ResultMessagesFailedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tippspiel_result_messages_failed_total",
	Help: "The number of result feed messages that could not be applied",
})
