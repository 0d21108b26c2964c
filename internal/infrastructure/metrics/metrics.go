package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsApplied *prometheus.CounterVec
	TransactionAmount   prometheus.Histogram
	TransactionErrors   *prometheus.CounterVec

	// Account metrics
	AccountsOpened prometheus.Counter
	AccountsClosed prometheus.Counter

	// Loan metrics
	LoansGranted          prometheus.Counter
	LoansSettled          prometheus.Counter
	InstallmentsSettled   prometheus.Counter
	InstallmentShortfalls prometheus.Counter
	InterestAccrued       prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// SMS metrics
	SMSSent    prometheus.Counter
	SMSDropped prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bonusbank_transactions_applied_total",
				Help: "Total number of money movements by kind",
			},
			[]string{"kind"},
		),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bonusbank_transaction_amount_toman",
			Help:    "Movement amounts in toman",
			Buckets: []float64{1_000, 10_000, 100_000, 1_000_000, 10_000_000},
		}),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bonusbank_transaction_errors_total",
				Help: "Total number of rejected movements by reason",
			},
			[]string{"reason"},
		),

		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bonusbank_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		AccountsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bonusbank_accounts_closed_total",
			Help: "Total number of accounts closed",
		}),

		LoansGranted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bonusbank_loans_granted_total",
			Help: "Total number of loans granted",
		}),
		LoansSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bonusbank_loans_settled_total",
			Help: "Total number of loans fully settled",
		}),
		InstallmentsSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bonusbank_installments_settled_total",
			Help: "Total number of installments settled by the sweep",
		}),
		InstallmentShortfalls: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bonusbank_installment_shortfalls_total",
			Help: "Total number of due installments skipped for insufficient balance",
		}),
		InterestAccrued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bonusbank_interest_accrued_total",
			Help: "Total number of accounts credited with daily interest",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bonusbank_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bonusbank_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		SMSSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bonusbank_sms_sent_total",
			Help: "Total number of SMS messages delivered to the gateway",
		}),
		SMSDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bonusbank_sms_dropped_total",
			Help: "Total number of SMS messages dropped because the queue was full",
		}),
	}
}
