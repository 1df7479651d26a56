package inventory

// Vehicle is one unit of dealership stock.
type Vehicle struct {
	Year     int      `json:"year"`
	Make     string   `json:"make"`
	Model    string   `json:"model"`
	Price    int      `json:"price"`
	Mileage  int      `json:"mileage"`
	VIN      string   `json:"vin"`
	Color    string   `json:"color"`
	Features []string `json:"features,omitempty"`
}

// SearchCriteria mirrors the inventory_search tool parameters.
// Zero values mean "no filter".
type SearchCriteria struct {
	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	Year     int    `json:"year,omitempty"`
	PriceMax int    `json:"price_max,omitempty"`
	Type     string `json:"type,omitempty"`
}
