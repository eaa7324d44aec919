package product

// Product is the record the product catalog returns for a validated id.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
}

// MapByID indexes products by their id for price/name lookups.
func MapByID(products []Product) map[int64]Product {
	byID := make(map[int64]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return byID
}
