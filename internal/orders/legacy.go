package orders

// LegacyItem is the dashboard-generation line item shape. Those records were
// written with numeric price/quantity and no customization or summary totals.
type LegacyItem struct {
	ProductName string  `dynamodbav:"product_name"`
	Quantity    int     `dynamodbav:"quantity"`
	Price       float64 `dynamodbav:"price"`
}

// CanonicalItems returns the order's line items in the canonical shape.
// Legacy records are adapted on read: line total = price * quantity, no
// customization. The stored record is left untouched.
func (o *Order) CanonicalItems() []LineItem {
	if len(o.Items) > 0 {
		return o.Items
	}
	if len(o.LegacyItems) == 0 {
		return nil
	}
	items := make([]LineItem, 0, len(o.LegacyItems))
	for _, li := range o.LegacyItems {
		items = append(items, LineItem{
			ProductName: li.ProductName,
			Price:       li.Price,
			Quantity:    li.Quantity,
			Total:       li.Price * float64(li.Quantity),
		})
	}
	return items
}
