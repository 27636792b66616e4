package analytics

// Thresholds are the limits used to flag a year's billing indicators.
type Thresholds struct {
	ReferralMin     float64 `json:"referralMin"`
	InvoicingMin    float64 `json:"invoicingMin"`
	PaymentMin      float64 `json:"paymentMin"`
	CancellationMax float64 `json:"cancellationMax"`
}

// DefaultThresholds are the limits the back office has always used.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ReferralMin:     50,
		InvoicingMin:    90,
		PaymentMin:      90,
		CancellationMax: 15,
	}
}

// BillingFlags marks the indicators of a year that are out of bounds.
type BillingFlags struct {
	LowReferral      bool `json:"lowReferral"`
	LowInvoicing     bool `json:"lowInvoicing"`
	LowPayment       bool `json:"lowPayment"`
	HighCancellation bool `json:"highCancellation"`
}

// Flag compares the rates of y with the thresholds. A rate equal to its
// limit is not flagged.
func (t Thresholds) Flag(y YearBilling) BillingFlags {
	return BillingFlags{
		LowReferral:      y.ReferralRatio < t.ReferralMin,
		LowInvoicing:     y.InvoicingRate < t.InvoicingMin,
		LowPayment:       y.PaymentRate < t.PaymentMin,
		HighCancellation: y.CancellationRate > t.CancellationMax,
	}
}
