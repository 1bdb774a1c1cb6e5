package models

import (
	"errors"
	"fmt"
	"time"
)

// Category classifies the material a record was produced for.
type Category string

const (
	CategoryRawMaterial  Category = "RAW_MATERIAL"
	CategoryFinalProduct Category = "FINAL_PRODUCT"
	CategoryIntermediate Category = "INTERMEDIATE"
)

// Status is the QC verdict of a record.
type Status string

const (
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusPending     Status = "PENDING"
	StatusConditional Status = "CONDITIONAL"
)

// ReportPurpose describes why a record was produced.
type ReportPurpose string

const (
	PurposeStandard       ReportPurpose = "STANDARD"
	PurposeCustomerSample ReportPurpose = "CUSTOMER_SAMPLE"
	PurposeDelivery       ReportPurpose = "DELIVERY"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownStatus   = errors.New("unknown status")
	ErrUnknownPurpose  = errors.New("unknown report purpose")
)

// CategoryLabels maps every category to its display string.
var CategoryLabels = map[Category]string{
	CategoryRawMaterial:  "مواد اولیه",
	CategoryFinalProduct: "محصول نهایی",
	CategoryIntermediate: "محصول میانی",
}

// ReportPurposeLabels maps every report purpose to its display string.
var ReportPurposeLabels = map[ReportPurpose]string{
	PurposeStandard:       "ارسال به استاندارد",
	PurposeCustomerSample: "ارسال نمونه به مشتری",
	PurposeDelivery:       "مجوز خروج / بارگیری",
}

// StatusLabels maps every status to its display string.
var StatusLabels = map[Status]string{
	StatusApproved:    "تایید شده",
	StatusRejected:    "مردود",
	StatusPending:     "در انتظار",
	StatusConditional: "مشروط",
}

// AllCategories lists the categories in display order.
func AllCategories() []Category {
	return []Category{CategoryRawMaterial, CategoryFinalProduct, CategoryIntermediate}
}

// AllStatuses lists the statuses in display order.
func AllStatuses() []Status {
	return []Status{StatusApproved, StatusRejected, StatusPending, StatusConditional}
}

// AllReportPurposes lists the report purposes in display order.
func AllReportPurposes() []ReportPurpose {
	return []ReportPurpose{PurposeStandard, PurposeCustomerSample, PurposeDelivery}
}

// Label returns the display string of the category.
func (c Category) Label() string {
	if label, ok := CategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Label returns the display string of the status.
func (s Status) Label() string {
	if label, ok := StatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Label returns the display string of the purpose.
func (p ReportPurpose) Label() string {
	if label, ok := ReportPurposeLabels[p]; ok {
		return label
	}
	return string(p)
}

// ParseCategory validates a raw category value.
func ParseCategory(value string) (Category, error) {
	c := Category(value)
	if _, ok := CategoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}
	return c, nil
}

// ParseStatus validates a raw status value.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if _, ok := StatusLabels[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
	}
	return s, nil
}

// ParseReportPurpose validates a raw purpose value.
func ParseReportPurpose(value string) (ReportPurpose, error) {
	p := ReportPurpose(value)
	if _, ok := ReportPurposeLabels[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPurpose, value)
	}
	return p, nil
}

// QCRecord is one completed analysis of a batch. Records are built once by the
// builder and never modified afterwards.
type QCRecord struct {
	ID            string        `json:"id"`
	BatchNumber   string        `json:"batchNumber"`
	ProductName   string        `json:"productName"`
	Category      Category      `json:"category"`
	Date          time.Time     `json:"date"`
	Technician    string        `json:"technician"`
	Status        Status        `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	Parameters    []QCParameter `json:"parameters"`
	ReportPurpose ReportPurpose `json:"reportPurpose"`

	// Present only when ReportPurpose is not STANDARD.
	CustomerName string `json:"customerName,omitempty"`
	// Present only when ReportPurpose is DELIVERY.
	TruckNumber string `json:"truckNumber,omitempty"`
	DriverName  string `json:"driverName,omitempty"`
}

// EffectivePurpose treats a record without an explicit purpose as STANDARD.
func (r QCRecord) EffectivePurpose() ReportPurpose {
	if r.ReportPurpose == "" {
		return PurposeStandard
	}
	return r.ReportPurpose
}

// Clone returns a deep copy that shares no parameter storage with r.
func (r QCRecord) Clone() QCRecord {
	out := r
	out.Parameters = CloneParameters(r.Parameters)
	return out
}
