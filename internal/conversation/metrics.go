package conversation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "travelchat_turns_total",
	Help: "Completed turns by trigger (typed|button) and outcome (reply|empty|failure)",
}, []string{"trigger", "outcome"})

func observeTurn(trigger TurnKind, outcome Outcome) {
	turnsTotal.WithLabelValues(trigger.String(), outcome.String()).Inc()
}
