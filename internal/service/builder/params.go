package builder

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/qclab/internal/domain/models"
)

// ErrParameterIndex is returned when an edit targets a missing position.
var ErrParameterIndex = errors.New("parameter index out of range")

// Errors returned when a form change cannot be applied.
var (
	ErrUnknownField     = errors.New("unknown parameter field")
	ErrUnknownOperation = errors.New("unknown parameter operation")
	ErrInvalidBound     = errors.New("invalid parameter bound")
)

// Parameter list operations of the entry form.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
)

// Editable parameter fields.
const (
	FieldName   = "name"
	FieldValue  = "value"
	FieldUnit   = "unit"
	FieldMethod = "method"
	FieldMin    = "min"
	FieldMax    = "max"
)

// ParameterChange is one edit of the entry form's parameter list. Value is
// the text typed into the field.
type ParameterChange struct {
	Op    string `json:"op"`
	Index int    `json:"index"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// ParameterEdit changes one field of a parameter.
type ParameterEdit func(*models.QCParameter)

// SetName edits the parameter name.
func SetName(name string) ParameterEdit {
	return func(p *models.QCParameter) { p.Name = name }
}

// SetValue edits the parameter value.
func SetValue(v models.ParamValue) ParameterEdit {
	return func(p *models.QCParameter) { p.Value = v }
}

// SetUnit edits the parameter unit.
func SetUnit(unit string) ParameterEdit {
	return func(p *models.QCParameter) { p.Unit = unit }
}

// SetMethod edits the test method citation.
func SetMethod(method string) ParameterEdit {
	return func(p *models.QCParameter) { p.Method = method }
}

// SetMin edits the lower acceptance bound; nil clears it.
func SetMin(v *float64) ParameterEdit {
	return func(p *models.QCParameter) { p.Min = copyBound(v) }
}

// SetMax edits the upper acceptance bound; nil clears it.
func SetMax(v *float64) ParameterEdit {
	return func(p *models.QCParameter) { p.Max = copyBound(v) }
}

// AddParameter returns params with a blank parameter appended.
func AddParameter(params []models.QCParameter) []models.QCParameter {
	out := make([]models.QCParameter, 0, len(params)+1)
	out = append(out, models.CloneParameters(params)...)
	return append(out, models.QCParameter{Value: models.Numeric(0)})
}

// UpdateParameter returns params with edit applied to the parameter at index.
func UpdateParameter(params []models.QCParameter, index int, edit ParameterEdit) ([]models.QCParameter, error) {
	if index < 0 || index >= len(params) {
		return nil, fmt.Errorf("%w: %d of %d", ErrParameterIndex, index, len(params))
	}
	out := models.CloneParameters(params)
	if edit != nil {
		edit(&out[index])
	}
	return out, nil
}

// RemoveParameter returns params without the parameter at index.
func RemoveParameter(params []models.QCParameter, index int) ([]models.QCParameter, error) {
	if index < 0 || index >= len(params) {
		return nil, fmt.Errorf("%w: %d of %d", ErrParameterIndex, index, len(params))
	}
	out := make([]models.QCParameter, 0, len(params)-1)
	for i, p := range params {
		if i == index {
			continue
		}
		out = append(out, p.Clone())
	}
	return out, nil
}

// ApplyChange returns params with change applied. params is not modified.
func ApplyChange(params []models.QCParameter, change ParameterChange) ([]models.QCParameter, error) {
	switch change.Op {
	case OpAdd:
		return AddParameter(params), nil
	case OpRemove:
		return RemoveParameter(params, change.Index)
	case OpUpdate:
		edit, err := FieldEdit(change.Field, change.Value)
		if err != nil {
			return nil, err
		}
		return UpdateParameter(params, change.Index, edit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, change.Op)
	}
}

// FieldEdit builds the edit for a form field from its entered text. Values
// go through models.ParseValue; an empty bound clears it.
func FieldEdit(field, text string) (ParameterEdit, error) {
	switch field {
	case FieldName:
		return SetName(text), nil
	case FieldValue:
		return SetValue(models.ParseValue(text)), nil
	case FieldUnit:
		return SetUnit(text), nil
	case FieldMethod:
		return SetMethod(text), nil
	case FieldMin, FieldMax:
		bound, err := parseBound(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		if field == FieldMin {
			return SetMin(bound), nil
		}
		return SetMax(bound), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func parseBound(text string) (*float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBound, text)
	}
	return &f, nil
}

func copyBound(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return models.Bound(*v)
}
