package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TopupAttempts counts finished attempts by outcome code ("SUCCESS" or a
	// ServiceError code).
	TopupAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "topup_attempts_total",
		Help: "Voucher redemption attempts by outcome.",
	}, []string{"result"})

	// AmountExtractionMisses counts successful remote responses that carried
	// none of the known amount fields. A non-zero rate here almost certainly
	// means the provider shipped a new response shape.
	AmountExtractionMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "topup_amount_extraction_miss_total",
		Help: "Successful redemption responses with no extractable amount.",
	})
)
