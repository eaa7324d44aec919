package orderitem

// QueryOrderItemsModel represents filter parameters for querying order items.
type QueryOrderItemsModel struct {
	Ids        []string `json:"ids,omitempty"`
	OrderIds   []string `json:"orderIds,omitempty"`
	ProductIds []int64  `json:"productIds,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}
