package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// cross-check the claimed order total against the line items
	v.RegisterStructValidation(createOrderStructValidation, CreateOrderRequest{})

	return v
}

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

// ParsePrice strips currency symbols and separators from a storefront price
// string and parses the remainder. Unparseable input yields 0, matching how
// the storefront always treated garbage prices.
func ParsePrice(s string) float64 {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// createOrderStructValidation verifies that, when the client claims a total,
// it equals the sum of (price * quantity) of the items to the cent.
func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)

	if req.TotalAmount == 0 {
		return // no claim to check; the server computes the total itself
	}

	var sum float64
	for _, it := range req.Items {
		sum += float64(it.Quantity) * ParsePrice(it.Price)
	}

	sumCents := int(math.Round(sum * 100))
	claimCents := int(math.Round(req.TotalAmount * 100))
	if sumCents != claimCents {
		sl.ReportError(req.TotalAmount, "totalAmount", "TotalAmount", "total_match_items",
			fmt.Sprintf("items sum %.2f != total %.2f", sum, req.TotalAmount))
	}
}
