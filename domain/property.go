package domain

type Property struct {
	ID           string  `yaml:"id" json:"id"`
	Address      string  `yaml:"address" json:"address"`
	City         string  `yaml:"city" json:"city"`
	State        string  `yaml:"state" json:"state"`
	ZipCode      string  `yaml:"zip_code" json:"zipCode"`
	Price        float64 `yaml:"price" json:"price"`
	Bedrooms     int     `yaml:"bedrooms" json:"bedrooms"`
	Bathrooms    float64 `yaml:"bathrooms" json:"bathrooms"`
	SquareFeet   int     `yaml:"square_feet" json:"squareFeet"`
	LotSize      float64 `yaml:"lot_size,omitempty" json:"lotSize,omitempty"`
	YearBuilt    int     `yaml:"year_built,omitempty" json:"yearBuilt,omitempty"`
	PropertyType string  `yaml:"property_type" json:"propertyType"`
	ListingDate  string  `yaml:"listing_date" json:"listingDate"` // YYYY-MM-DD
	Status       string  `yaml:"status" json:"status"`           // "Active", "Pending", "Sold"
	ImageURL     string  `yaml:"image_url" json:"imageUrl"`
	Description  string  `yaml:"description,omitempty" json:"description,omitempty"`
	Latitude     float64 `yaml:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    float64 `yaml:"longitude,omitempty" json:"longitude,omitempty"`
}

// PropertySearchParams holds the optional search filters; nil means unset.
type PropertySearchParams struct {
	Location string   `json:"location,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	Beds     *int     `json:"beds,omitempty"`
	Baths    *float64 `json:"baths,omitempty"`
	SortBy   string   `json:"sortBy,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

type PropertySearchResult struct {
	Success    bool                 `json:"success"`
	Properties []Property           `json:"properties"`
	Total      int                  `json:"total"`
	Filters    PropertySearchParams `json:"filters"`
}
