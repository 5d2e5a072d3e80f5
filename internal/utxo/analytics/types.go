// Package analytics computes per-transaction measurements over a chain store:
// sizes, values, fees, fee rates, embedded payloads and change heuristics.
package analytics

import (
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveReport(err error, started time.Time)
		ObserveChange(detected bool)
		ObserveResolutionFailure()
	}
)
