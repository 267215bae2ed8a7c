package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Ledger Metrics
var (
	LedgerCredits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerCredits,
			Help: HelpTextLedgerCredits,
		},
		[]string{LabelCurrency},
	)

	LedgerDebits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerDebits,
			Help: HelpTextLedgerDebits,
		},
		[]string{LabelCurrency},
	)

	LedgerTransfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerTransfers,
			Help: HelpTextLedgerTransfers,
		},
		[]string{LabelCurrency},
	)
)

// Game Metrics
var (
	BattlesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesCompleted,
			Help: HelpTextBattlesCompleted,
		},
		[]string{LabelMode, LabelOutcome},
	)

	BattlesSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesSettled,
			Help: HelpTextBattlesSettled,
		},
		[]string{LabelMode},
	)

	SettlementReplays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSettlementReplays,
			Help: HelpTextSettlementReplays,
		},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	ItemsEquipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsEquipped,
			Help: HelpTextItemsEquipped,
		},
		[]string{LabelItem},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)
)
