// Package trends derives the density and purity chart series from records.
//
// Parameter selection is a best-effort heuristic over free-text names and
// units. The precedence order used by Purity decides which column drives the
// plotted line and must not be reordered.
package trends

import (
	"strings"

	"github.com/mamadbah2/qclab/internal/domain/models"
)

// DefaultLimit is the number of most recent points kept per series.
const DefaultLimit = 10

const (
	densityKeyword   = "Density"
	purityKeyword    = "Purity"
	gcKeyword        = "GC"
	normalHexaneName = "GC - Normal Hexane"
	cyclohexaneName  = "GC - Cyclohexane"
	percentUnit      = "%"
	highPurityFloor  = 90.0
)

// Options tunes parameter matching.
type Options struct {
	// CaseInsensitive switches the substring and name checks to
	// case-insensitive comparison.
	CaseInsensitive bool
	// Limit caps the series length; values <= 0 mean DefaultLimit.
	Limit int
}

// Deriver computes trend series with fixed Options.
type Deriver struct {
	opts Options
}

// NewDeriver builds a Deriver.
func NewDeriver(opts Options) *Deriver {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	return &Deriver{opts: opts}
}

var defaultDeriver = NewDeriver(Options{})

// Density returns the density series using the default options.
func Density(records []models.QCRecord) []models.TrendPoint {
	return defaultDeriver.Density(records)
}

// Purity returns the purity series using the default options.
func Purity(records []models.QCRecord) []models.TrendPoint {
	return defaultDeriver.Purity(records)
}

// Density picks the first parameter whose name contains "Density" in each
// record and keeps strictly positive values.
func (d *Deriver) Density(records []models.QCRecord) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, len(records))
	for _, rec := range records {
		param, ok := d.first(rec.Parameters, func(p models.QCParameter) bool {
			return d.contains(p.Name, densityKeyword)
		})
		if !ok {
			continue
		}
		value := param.Value.Number()
		if value <= 0 {
			continue
		}
		points = append(points, models.TrendPoint{
			Label:     ShortBatch(rec.BatchNumber),
			Value:     value,
			Product:   rec.ProductName,
			Parameter: param.Name,
		})
	}
	return d.tail(points)
}

// Purity selects, per record, the parameter that best represents product
// purity. Preference order: a name containing "Purity", the exact name
// "GC - Normal Hexane", the exact name "GC - Cyclohexane", then the first
// numeric percentage above 90.
func (d *Deriver) Purity(records []models.QCRecord) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, len(records))
	for _, rec := range records {
		param, ok := d.purityParameter(rec.Parameters)
		if !ok {
			continue
		}
		value := param.Value.Number()
		if value <= 0 {
			continue
		}
		points = append(points, models.TrendPoint{
			Label:     ShortBatch(rec.BatchNumber),
			Value:     value,
			Product:   rec.ProductName,
			Parameter: param.Name,
		})
	}
	return d.tail(points)
}

func (d *Deriver) purityParameter(params []models.QCParameter) (models.QCParameter, bool) {
	if !d.hasPurityCandidate(params) {
		return models.QCParameter{}, false
	}

	rules := []func(models.QCParameter) bool{
		func(p models.QCParameter) bool { return d.contains(p.Name, purityKeyword) },
		func(p models.QCParameter) bool { return d.equals(p.Name, normalHexaneName) },
		func(p models.QCParameter) bool { return d.equals(p.Name, cyclohexaneName) },
		isHighPercentage,
	}
	for _, rule := range rules {
		if p, ok := d.first(params, rule); ok {
			return p, true
		}
	}
	return models.QCParameter{}, false
}

func (d *Deriver) hasPurityCandidate(params []models.QCParameter) bool {
	_, ok := d.first(params, func(p models.QCParameter) bool {
		return d.contains(p.Name, purityKeyword) || d.contains(p.Name, gcKeyword) || isHighPercentage(p)
	})
	return ok
}

// isHighPercentage guards against charting low-percentage impurity columns.
// Only values entered as numbers qualify.
func isHighPercentage(p models.QCParameter) bool {
	if p.Unit != percentUnit {
		return false
	}
	v, ok := p.Value.Float()
	return ok && v > highPurityFloor
}

func (d *Deriver) first(params []models.QCParameter, match func(models.QCParameter) bool) (models.QCParameter, bool) {
	for _, p := range params {
		if match(p) {
			return p, true
		}
	}
	return models.QCParameter{}, false
}

func (d *Deriver) contains(s, substr string) bool {
	if d.opts.CaseInsensitive {
		return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
	}
	return strings.Contains(s, substr)
}

func (d *Deriver) equals(a, b string) bool {
	if d.opts.CaseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (d *Deriver) tail(points []models.TrendPoint) []models.TrendPoint {
	if len(points) > d.opts.Limit {
		return points[len(points)-d.opts.Limit:]
	}
	return points
}

// ShortBatch returns the part of a batch number after its last '-'. Batch
// numbers without a separator, or ending in one, are returned whole.
func ShortBatch(batch string) string {
	idx := strings.LastIndex(batch, "-")
	if idx < 0 || idx == len(batch)-1 {
		return batch
	}
	return batch[idx+1:]
}
