// Package stats computes the dashboard status counts.
package stats

import "github.com/mamadbah2/qclab/internal/domain/models"

// Compute counts records by status in a single pass. CONDITIONAL and PENDING
// records share one bucket on the dashboard.
func Compute(records []models.QCRecord) models.Stats {
	s := models.Stats{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case models.StatusApproved:
			s.Approved++
		case models.StatusRejected:
			s.Rejected++
		case models.StatusConditional, models.StatusPending:
			s.ConditionalOrPending++
		}
	}
	return s
}
