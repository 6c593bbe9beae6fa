package checkout

import "math"

const (
	PaymentCOD      = "cod"
	PaymentJazzCash = "manual_jazzcash"
	PaymentRaast    = "manual_raast"
)

// TransferAccount holds the manual-transfer destination shown to the
// customer after selecting a transfer method.
type TransferAccount struct {
	Title   string `json:"title"`
	Number  string `json:"number"`
	Account string `json:"account_name"`
}

// PaymentMethod describes one way to pay. Discount marks methods that take
// the configured percentage off the total; cash on delivery never does.
type PaymentMethod struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Discount    bool             `json:"has_discount"`
	Details     *TransferAccount `json:"details,omitempty"`
}

// DiscountedTotal applies pct (0..1) and rounds half away from zero, the
// same rounding the storefront displays.
func DiscountedTotal(total int, pct float64) int {
	return int(math.Round(float64(total) * (1 - pct)))
}
