// Package search filters the record collection for the report view.
package search

import (
	"strings"

	"github.com/mamadbah2/qclab/internal/domain/models"
)

// Filter returns the records matching every predicate of spec, in input order.
// The result never aliases the input slice.
func Filter(records []models.QCRecord, spec models.FilterSpec) []models.QCRecord {
	query := strings.ToLower(spec.SearchText)

	out := make([]models.QCRecord, 0, len(records))
	for _, rec := range records {
		if !matchesText(rec, query) {
			continue
		}
		if !models.IsWildcard(spec.Status) && string(rec.Status) != spec.Status {
			continue
		}
		if !models.IsWildcard(spec.Category) && string(rec.Category) != spec.Category {
			continue
		}
		if !models.IsWildcard(spec.ReportPurpose) && string(rec.EffectivePurpose()) != spec.ReportPurpose {
			continue
		}
		if !models.IsWildcard(spec.CustomerName) && rec.CustomerName != spec.CustomerName {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesText(rec models.QCRecord, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(rec.ProductName), query) ||
		strings.Contains(strings.ToLower(rec.BatchNumber), query) {
		return true
	}
	return rec.CustomerName != "" && strings.Contains(strings.ToLower(rec.CustomerName), query)
}

// Customers lists each non-empty customer name once, in first-seen order.
func Customers(records []models.QCRecord) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, rec := range records {
		if rec.CustomerName == "" {
			continue
		}
		if _, ok := seen[rec.CustomerName]; ok {
			continue
		}
		seen[rec.CustomerName] = struct{}{}
		out = append(out, rec.CustomerName)
	}
	return out
}
