package models

// Product is a sellable catalog item. Images holds public blob URLs.
type Product struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
	Stock  int      `json:"stock"`
}

// Instrument is a musical instrument shown in the catalog.
type Instrument struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Professor is a teacher listed in the catalog.
type Professor struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Bio        string `json:"bio"`
	Instrument string `json:"instrument"`
	PhotoURL   string `json:"photoUrl"`
}
