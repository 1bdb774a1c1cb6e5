package models

import "time"

// SampleRecords returns the demonstration records a fresh lab starts with, in
// a fixed listing order that is not sorted by date.
func SampleRecords(now time.Time) []QCRecord {
	day := 24 * time.Hour

	return []QCRecord{
		{
			ID:            "1",
			BatchNumber:   "HEX-1403-88",
			ProductName:   "Normal Hexane",
			Category:      CategoryFinalProduct,
			Date:          now.Add(-2 * day),
			Technician:    "علی رضایی",
			Status:        StatusApproved,
			ReportPurpose: PurposeDelivery,
			CustomerName:  "صنایع شیمیایی اصفهان",
			TruckNumber:   "۱۲ع۴۵۶ ایران ۱۳",
			DriverName:    "محسن احمدی",
			Parameters: []QCParameter{
				{Name: "GC - Normal Hexane", Value: Numeric(98.5), Unit: "%", Method: "ASTM D611", Min: Bound(98), Max: Bound(100)},
				{Name: "GC - Benzene", Value: Numeric(0.01), Unit: "%", Method: "ASTM D611", Min: Bound(0), Max: Bound(0.05)},
				{Name: "Density @ 15°C", Value: Numeric(0.659), Unit: "g/cm3", Method: "ASTM D4052", Min: Bound(0.655), Max: Bound(0.665)},
				{Name: "Doctor Test", Value: Text("Negative"), Unit: "-", Method: "ASTM D4952"},
				{Name: "Total Sulfur", Value: Numeric(2), Unit: "ppm", Method: "ASTM D5453"},
			},
			Notes: "خلوص بسیار مطلوب. بنزن در حد ناچیز. سولفور و دکتر تست مطابق استاندارد.",
		},
		{
			ID:            "2",
			BatchNumber:   "SOL-D86-09",
			ProductName:   "Special Solvent 402",
			Category:      CategoryIntermediate,
			Date:          now.Add(-day),
			Technician:    "سارا محمدی",
			Status:        StatusConditional,
			ReportPurpose: PurposeCustomerSample,
			CustomerName:  "بازرگانی اتحاد",
			Parameters: []QCParameter{
				{Name: "Flash Point", Value: Numeric(38), Unit: "°C", Method: "ASTM D93", Min: Bound(38), Max: Bound(60)},
				{Name: "ASTM D86 - IBP", Value: Numeric(152), Unit: "°C", Method: "ASTM D86", Min: Bound(150), Max: Bound(160)},
				{Name: "ASTM D86 - 50%", Value: Numeric(175), Unit: "°C", Method: "ASTM D86", Min: Bound(170), Max: Bound(180)},
				{Name: "ASTM D86 - FBP", Value: Numeric(205), Unit: "°C", Method: "ASTM D86", Min: Bound(195), Max: Bound(205)},
				{Name: "Density @ 15°C", Value: Numeric(0.785), Unit: "g/cm3", Method: "ASTM D4052", Min: Bound(0.775), Max: Bound(0.795)},
				{Name: "Water Content", Value: Numeric(50), Unit: "ppm", Method: "ASTM D6304"},
			},
			Notes: "نقطه اشتعال روی مرز پایین استاندارد است. نیاز به بررسی مجدد.",
		},
		{
			ID:            "3",
			BatchNumber:   "ACID-908",
			ProductName:   "Sulfuric Acid",
			Category:      CategoryRawMaterial,
			Date:          now,
			Technician:    "محمد کاظمی",
			Status:        StatusApproved,
			ReportPurpose: PurposeStandard,
			Parameters: []QCParameter{
				{Name: "Acid Purity", Value: Numeric(98.2), Unit: "%", Method: "Titration", Min: Bound(98), Max: Bound(99)},
				{Name: "Density", Value: Numeric(1.84), Unit: "g/cm3", Method: "ASTM D1298", Min: Bound(1.83), Max: Bound(1.85)},
				{Name: "Methyl Orange Reaction", Value: Text("Acidic"), Unit: "-", Method: "ISIRI 222"},
			},
			Notes: "ورودی تانکر شماره 2",
		},
	}
}
