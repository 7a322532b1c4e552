package pipeline

import (
	"clarifycoder/internal/critic"
)

// MetricsRecord is the terminal summary of one prompt run, the unit the
// aggregator consumes.
type MetricsRecord struct {
	Ambiguous       bool
	Status          critic.Status
	RepairAttempted bool
}

// Metrics holds the six batch-level percentages plus the verdict breakdown
// for the ambiguous, clear, and global partitions.
type Metrics struct {
	// CRR is the share of prompts flagged ambiguous.
	CRR float64
	// CSR is the pass rate among clear prompts.
	CSR float64
	// ARSR is the pass rate among ambiguous prompts after any repair.
	ARSR float64
	// RFR is the pass rate among prompts where a repair was attempted.
	RFR float64
	// USR is the unsupported rate over all prompts.
	USR float64
	// Coverage is the pass rate over all prompts.
	Coverage float64

	Total     int
	Breakdown map[string]map[string]int
}

// Named returns the six rates keyed by their conventional names.
func (m Metrics) Named() map[string]float64 {
	return map[string]float64{
		"crr":      m.CRR,
		"csr":      m.CSR,
		"arsr":     m.ARSR,
		"rfr":      m.RFR,
		"usr":      m.USR,
		"coverage": m.Coverage,
	}
}

// Aggregate computes batch metrics from terminal records. It is a pure
// function; every zero-denominator ratio is 0 rather than an error.
func Aggregate(records []MetricsRecord) Metrics {
	breakdown := map[string]map[string]int{
		"ambiguous": {},
		"clear":     {},
		"global":    {},
	}

	var ambiguous, clear int
	var passClear, passAmbiguous, passTotal int
	var unsupported int
	var attempted, attemptedPass int

	for _, rec := range records {
		status := string(rec.Status)
		breakdown["global"][status]++
		if rec.Ambiguous {
			ambiguous++
			breakdown["ambiguous"][status]++
		} else {
			clear++
			breakdown["clear"][status]++
		}

		pass := rec.Status == critic.StatusPass
		if pass {
			passTotal++
			if rec.Ambiguous {
				passAmbiguous++
			} else {
				passClear++
			}
		}
		if rec.Status == critic.StatusUnsupported {
			unsupported++
		}
		if rec.RepairAttempted {
			attempted++
			if pass {
				attemptedPass++
			}
		}
	}

	total := len(records)
	return Metrics{
		CRR:       percent(ambiguous, total),
		CSR:       percent(passClear, clear),
		ARSR:      percent(passAmbiguous, ambiguous),
		RFR:       percent(attemptedPass, attempted),
		USR:       percent(unsupported, total),
		Coverage:  percent(passTotal, total),
		Total:     total,
		Breakdown: breakdown,
	}
}

func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}
