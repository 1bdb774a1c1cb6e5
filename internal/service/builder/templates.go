package builder

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/qclab/internal/domain/models"
)

// ErrUnknownTemplate is returned for template keys missing from the registry.
var ErrUnknownTemplate = errors.New("unknown template")

// Template keys.
const (
	TemplateEmpty        = "EMPTY"
	TemplateDistillation = "DISTILLATION"
	TemplateGCAnalysis   = "GC_ANALYSIS"
	TemplateImpurities   = "IMPURITIES_COMPLEMENTARY"
	TemplateAbsorbance   = "ABSORBANCE"
	TemplatePhysical     = "GENERAL_PHYSICAL"
	TemplateAcidBase     = "ACID_BASE"
)

// Template is a named preset of parameter skeletons.
type Template struct {
	Key        string
	Label      string
	Parameters []models.QCParameter
}

// TemplateInfo describes a template without exposing its parameters.
type TemplateInfo struct {
	Key            string `json:"key"`
	Label          string `json:"label"`
	ParameterCount int    `json:"parameterCount"`
}

func d86(name, unit string) models.QCParameter {
	return models.QCParameter{Name: name, Value: models.Numeric(0), Unit: unit, Method: "ASTM D86"}
}

// registry is never handed out directly; callers get deep copies.
var registry = []Template{
	{Key: TemplateEmpty, Label: "خالی (دستی)"},
	{
		Key:   TemplateDistillation,
		Label: "تقطیر اتمسفریک (ASTM D86)",
		Parameters: []models.QCParameter{
			d86("ASTM D86 - IBP", "°C"),
			d86("ASTM D86 - 5%", "°C"),
			d86("ASTM D86 - 10%", "°C"),
			d86("ASTM D86 - 20%", "°C"),
			d86("ASTM D86 - 30%", "°C"),
			d86("ASTM D86 - 40%", "°C"),
			d86("ASTM D86 - 50%", "°C"),
			d86("ASTM D86 - 60%", "°C"),
			d86("ASTM D86 - 70%", "°C"),
			d86("ASTM D86 - 80%", "°C"),
			d86("ASTM D86 - 90%", "°C"),
			d86("ASTM D86 - 95%", "°C"),
			d86("ASTM D86 - FBP", "°C"),
			d86("Recovery", "vol%"),
			d86("Residue", "vol%"),
			d86("Loss", "vol%"),
		},
	},
	{
		Key:   TemplateGCAnalysis,
		Label: "آنالیز GC (هگزان/بنزن)",
		Parameters: []models.QCParameter{
			{Name: "GC - Normal Hexane", Value: models.Numeric(0), Unit: "%", Method: "ASTM D611 / GC", Min: models.Bound(0), Max: models.Bound(100)},
			{Name: "GC - Cyclohexane", Value: models.Numeric(0), Unit: "%", Method: "ASTM D611 / GC", Min: models.Bound(0), Max: models.Bound(100)},
			{Name: "GC - Benzene", Value: models.Numeric(0), Unit: "%", Method: "ASTM D611 / GC", Min: models.Bound(0), Max: models.Bound(100)},
			{Name: "Density @ 15°C", Value: models.Numeric(0), Unit: "g/cm3", Method: "ASTM D4052"},
		},
	},
	{
		Key:   TemplateImpurities,
		Label: "تست‌های تکمیلی (دکتر تست، سولفور، برم...)",
		Parameters: []models.QCParameter{
			{Name: "Doctor Test (Mercaptans)", Value: models.Text("Negative"), Unit: "-", Method: "ASTM D4952"},
			{Name: "Reaction w/ Methyl Orange", Value: models.Text("Neutral"), Unit: "-", Method: "ISIRI Method"},
			{Name: "Total Sulfur", Value: models.Numeric(0), Unit: "ppm", Method: "ASTM D5453"},
			{Name: "Water Content", Value: models.Numeric(0), Unit: "ppm", Method: "ASTM D6304"},
			{Name: "Bromine Index", Value: models.Numeric(0), Unit: "mg/100g", Method: "ASTM D2710"},
		},
	},
	{
		Key:   TemplateAbsorbance,
		Label: "تست جذب (UV)",
		Parameters: []models.QCParameter{
			{Name: "Absorbance @ 240nm", Value: models.Numeric(0), Unit: "Abs", Method: "Spectrophotometry"},
			{Name: "Absorbance @ 280nm", Value: models.Numeric(0), Unit: "Abs", Method: "Spectrophotometry"},
		},
	},
	{
		Key:   TemplatePhysical,
		Label: "خواص فیزیکی عمومی",
		Parameters: []models.QCParameter{
			{Name: "Density @ 15°C", Value: models.Numeric(0), Unit: "g/cm3", Method: "ASTM D4052"},
			{Name: "Viscosity", Value: models.Numeric(0), Unit: "cP", Method: "ASTM D445"},
			{Name: "Flash Point", Value: models.Numeric(0), Unit: "°C", Method: "ASTM D93"},
			{Name: "Pour Point", Value: models.Numeric(0), Unit: "°C", Method: "ASTM D97"},
		},
	},
	{
		Key:   TemplateAcidBase,
		Label: "خلوص اسید/سود/اولئوم",
		Parameters: []models.QCParameter{
			{Name: "Acid Purity", Value: models.Numeric(0), Unit: "%", Method: "Titration"},
			{Name: "Liquid Caustic Soda Purity", Value: models.Numeric(0), Unit: "%", Method: "Titration"},
			{Name: "Oleum Purity", Value: models.Numeric(0), Unit: "%", Method: "Titration"},
			{Name: "Density", Value: models.Numeric(0), Unit: "g/cm3", Method: "ASTM D1298"},
		},
	},
}

// Templates lists the registry in display order.
func Templates() []TemplateInfo {
	out := make([]TemplateInfo, len(registry))
	for i, tpl := range registry {
		out[i] = TemplateInfo{Key: tpl.Key, Label: tpl.Label, ParameterCount: len(tpl.Parameters)}
	}
	return out
}

// LookupTemplate returns a deep copy of the template registered under key.
func LookupTemplate(key string) (Template, error) {
	for _, tpl := range registry {
		if tpl.Key == key {
			return Template{Key: tpl.Key, Label: tpl.Label, Parameters: copyParameters(tpl.Parameters)}, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, key)
}

// TemplateParameters returns a fresh, independently owned copy of the
// template's parameter skeletons.
func TemplateParameters(key string) ([]models.QCParameter, error) {
	tpl, err := LookupTemplate(key)
	if err != nil {
		return nil, err
	}
	return tpl.Parameters, nil
}

func copyParameters(params []models.QCParameter) []models.QCParameter {
	out := models.CloneParameters(params)
	if out == nil {
		out = []models.QCParameter{}
	}
	return out
}
