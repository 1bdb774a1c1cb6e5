// Package builder turns user drafts into immutable QC records.
package builder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/qclab/internal/domain/models"
)

// ErrInvalidDraft marks drafts that cannot become records.
var ErrInvalidDraft = errors.New("invalid draft")

// ValidationError lists every problem found in a draft.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid draft: %s", strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDraft }

// Builder assigns identity and creation time to drafts.
type Builder struct {
	now   func() time.Time
	newID func() string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithClock overrides the creation time source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(newID func() string) Option {
	return func(b *Builder) { b.newID = newID }
}

// New returns a Builder stamping records with time.Now and UUIDv7 ids.
func New(opts ...Option) *Builder {
	b := &Builder{now: time.Now, newID: newRecordID}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// newRecordID returns a time-ordered id, falling back to a random one if the
// clock source fails.
func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ApplyTemplate replaces the draft parameters with a copy of the template.
// Templates without parameters leave the current parameters in place.
func ApplyTemplate(draft models.Draft, key string) (models.Draft, error) {
	params, err := TemplateParameters(key)
	if err != nil {
		return draft, err
	}
	if len(params) > 0 {
		draft.Parameters = params
	}
	return draft, nil
}

// Build validates draft and constructs a record from it. Logistics fields that
// do not belong to the chosen purpose are dropped.
func (b *Builder) Build(draft models.Draft) (models.QCRecord, error) {
	category, status, purpose, err := validate(draft)
	if err != nil {
		return models.QCRecord{}, err
	}

	rec := models.QCRecord{
		ID:            b.newID(),
		BatchNumber:   draft.BatchNumber,
		ProductName:   draft.ProductName,
		Category:      category,
		Date:          b.now(),
		Technician:    draft.Technician,
		Status:        status,
		Notes:         draft.Notes,
		Parameters:    models.CloneParameters(draft.Parameters),
		ReportPurpose: purpose,
	}
	if rec.Parameters == nil {
		rec.Parameters = []models.QCParameter{}
	}

	if purpose != models.PurposeStandard {
		rec.CustomerName = draft.CustomerName
	}
	if purpose == models.PurposeDelivery {
		rec.TruckNumber = draft.TruckNumber
		rec.DriverName = draft.DriverName
	}

	return rec, nil
}

func validate(draft models.Draft) (models.Category, models.Status, models.ReportPurpose, error) {
	var problems []string

	required := []struct {
		field string
		value string
	}{
		{"batchNumber", draft.BatchNumber},
		{"productName", draft.ProductName},
		{"technician", draft.Technician},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.field+" is required")
		}
	}

	category := models.DefaultCategory
	if draft.Category != "" {
		c, err := models.ParseCategory(string(draft.Category))
		if err != nil {
			problems = append(problems, err.Error())
		}
		category = c
	}

	status := models.DefaultStatus
	if draft.Status != "" {
		s, err := models.ParseStatus(string(draft.Status))
		if err != nil {
			problems = append(problems, err.Error())
		}
		status = s
	}

	purpose := models.DefaultPurpose
	if draft.ReportPurpose != "" {
		p, err := models.ParseReportPurpose(string(draft.ReportPurpose))
		if err != nil {
			problems = append(problems, err.Error())
		}
		purpose = p
	}

	if len(problems) > 0 {
		return "", "", "", &ValidationError{Problems: problems}
	}
	return category, status, purpose, nil
}
