package order

// QueryOrdersModel represents filter parameters for querying orders.
// An empty Status means no status filter.
type QueryOrdersModel struct {
	Status Status `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// PaginationModel represents the page/limit/optional-status shape of a list
// request. Zero values fall back to defaults at the service layer.
type PaginationModel struct {
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Status Status `json:"status,omitempty"`
}

// PageMeta describes the pagination metadata of a list response.
type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int64 `json:"lastPage"`
}
