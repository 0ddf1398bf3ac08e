package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsReceived = promauto.NewCounter(prometheus.CounterOpts{
	Name: "birdrelay_events_received",
	Help: "Number of stream events received",
})

var eventsForwarded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "birdrelay_events_forwarded",
	Help: "Number of events forwarded to the channel",
})

var eventsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "birdrelay_events_rejected",
	Help: "Number of events rejected by admission, by reason",
}, []string{"reason"})
