package trends

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/qclab/internal/domain/models"
)

func record(batch string, params ...models.QCParameter) models.QCRecord {
	return models.QCRecord{BatchNumber: batch, ProductName: "product " + batch, Parameters: params}
}

func param(name string, value models.ParamValue, unit string) models.QCParameter {
	return models.QCParameter{Name: name, Value: value, Unit: unit}
}

func TestDensityAndPurityScenario(t *testing.T) {
	records := []models.QCRecord{
		record("HEX-1403-88", param("Density @ 15°C", models.Numeric(0.659), "g/cm3")),
		record("HEX-1403-89", param("GC - Normal Hexane", models.Numeric(98.5), "%")),
	}

	density := Density(records)
	require.Len(t, density, 1)
	assert.Equal(t, 0.659, density[0].Value)
	assert.Equal(t, "88", density[0].Label)

	purity := Purity(records)
	require.Len(t, purity, 1)
	assert.Equal(t, 98.5, purity[0].Value)
	assert.Equal(t, "GC - Normal Hexane", purity[0].Parameter)
	assert.Equal(t, "89", purity[0].Label)
}

func TestTextValuesAreExcluded(t *testing.T) {
	records := []models.QCRecord{
		record("A-1", param("Density", models.Text("Negative"), "-")),
		record("A-2", param("Acid Purity", models.Text("Negative"), "%")),
	}

	assert.Empty(t, Density(records))
	assert.Empty(t, Purity(records))
}

func TestTextWithUnitsIsReadByLeadingNumber(t *testing.T) {
	records := []models.QCRecord{
		record("HEX-1403-90", param("Density @ 15°C", models.Text("0.659 g/cm3"), "g/cm3")),
		record("HEX-1403-91", param("GC - Normal Hexane", models.Text("98.5%"), "%")),
	}

	density := Density(records)
	require.Len(t, density, 1)
	assert.Equal(t, 0.659, density[0].Value)
	assert.Equal(t, "90", density[0].Label)

	purity := Purity(records)
	require.Len(t, purity, 1)
	assert.Equal(t, 98.5, purity[0].Value)
	assert.Equal(t, "91", purity[0].Label)
}

func TestNumericTextIsCoerced(t *testing.T) {
	records := []models.QCRecord{
		record("B-7", param("Density", models.Text("1.84"), "g/cm3"), param("Oleum Purity", models.Text("99.1"), "%")),
	}

	density := Density(records)
	require.Len(t, density, 1)
	assert.Equal(t, 1.84, density[0].Value)

	purity := Purity(records)
	require.Len(t, purity, 1)
	assert.Equal(t, 99.1, purity[0].Value)
}

func TestDensityUsesFirstMatch(t *testing.T) {
	records := []models.QCRecord{
		record("C-1", param("Density @ 15°C", models.Numeric(0.7), "g/cm3"), param("Density @ 20°C", models.Numeric(0.69), "g/cm3")),
	}

	density := Density(records)
	require.Len(t, density, 1)
	assert.Equal(t, 0.7, density[0].Value)
}

func TestDensityFirstMatchZeroDropsRecord(t *testing.T) {
	records := []models.QCRecord{
		record("C-2", param("Density @ 15°C", models.Numeric(0), "g/cm3"), param("Density", models.Numeric(0.8), "g/cm3")),
	}

	assert.Empty(t, Density(records))
}

func TestDensityIsCaseSensitiveByDefault(t *testing.T) {
	records := []models.QCRecord{record("D-1", param("density", models.Numeric(0.8), "g/cm3"))}

	assert.Empty(t, Density(records))

	d := NewDeriver(Options{CaseInsensitive: true})
	assert.Len(t, d.Density(records), 1)
}

func TestPurityPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		params []models.QCParameter
		want   string
	}{
		{
			name: "purity name wins over hexane listed first",
			params: []models.QCParameter{
				param("GC - Normal Hexane", models.Numeric(97), "%"),
				param("Acid Purity", models.Numeric(98.2), "%"),
			},
			want: "Acid Purity",
		},
		{
			name: "normal hexane wins over cyclohexane listed first",
			params: []models.QCParameter{
				param("GC - Cyclohexane", models.Numeric(1.2), "%"),
				param("GC - Normal Hexane", models.Numeric(98.1), "%"),
			},
			want: "GC - Normal Hexane",
		},
		{
			name: "cyclohexane wins over high percentage",
			params: []models.QCParameter{
				param("Assay", models.Numeric(99.9), "%"),
				param("GC - Cyclohexane", models.Numeric(96), "%"),
			},
			want: "GC - Cyclohexane",
		},
		{
			name: "high percentage fallback",
			params: []models.QCParameter{
				param("Recovery", models.Numeric(40), "%"),
				param("Assay", models.Numeric(99.4), "%"),
			},
			want: "Assay",
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := Purity([]models.QCRecord{record(fmt.Sprintf("P-%d", i), tt.params...)})
			require.Len(t, points, 1)
			assert.Equal(t, tt.want, points[0].Parameter)
		})
	}
}

func TestPurityIgnoresOtherGCColumns(t *testing.T) {
	records := []models.QCRecord{record("G-1", param("GC - Benzene", models.Numeric(0.01), "%"))}

	assert.Empty(t, Purity(records))
}

func TestPurityHighPercentageRequiresNumericValue(t *testing.T) {
	records := []models.QCRecord{record("G-2", param("Assay", models.Text("99.5"), "%"))}

	assert.Empty(t, Purity(records))
}

func TestSeriesKeepLastTenInOrder(t *testing.T) {
	var records []models.QCRecord
	for i := 1; i <= 15; i++ {
		records = append(records, record(fmt.Sprintf("LOT-%d", i), param("Density", models.Numeric(float64(i)), "g/cm3")))
	}

	points := Density(records)
	require.Len(t, points, DefaultLimit)
	assert.Equal(t, "6", points[0].Label)
	assert.Equal(t, "15", points[len(points)-1].Label)

	d := NewDeriver(Options{Limit: 3})
	assert.Len(t, d.Density(records), 3)
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, Density(nil))
	assert.Empty(t, Purity([]models.QCRecord{}))
	assert.Empty(t, Density([]models.QCRecord{record("X")}))
}

func TestSampleRecords(t *testing.T) {
	records := models.SampleRecords(time.Now())

	density := Density(records)
	require.Len(t, density, 3)
	assert.Equal(t, []string{"88", "09", "908"}, []string{density[0].Label, density[1].Label, density[2].Label})

	purity := Purity(records)
	require.Len(t, purity, 2)
	assert.Equal(t, "GC - Normal Hexane", purity[0].Parameter)
	assert.Equal(t, "Acid Purity", purity[1].Parameter)
}

func TestShortBatch(t *testing.T) {
	assert.Equal(t, "88", ShortBatch("HEX-1403-88"))
	assert.Equal(t, "ACID908", ShortBatch("ACID908"))
	assert.Equal(t, "ACID-", ShortBatch("ACID-"))
	assert.Equal(t, "", ShortBatch(""))
}
