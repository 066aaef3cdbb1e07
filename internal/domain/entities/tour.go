package entities

// Tour is a bookable educational travel package. Tours are created when the
// catalog is loaded and are never mutated afterwards.
type Tour struct {
	ID               string   `json:"id" db:"id"`
	Title            string   `json:"title" db:"title"`
	DestinationLabel string   `json:"destination" db:"destination_label"`
	CategoryID       string   `json:"category_id" db:"category_id"`
	DurationDays     int      `json:"duration_days" db:"duration_days"`
	Price            float64  `json:"price" db:"price"`
	Rating           float64  `json:"rating" db:"rating"`
	ReviewCount      int      `json:"review_count" db:"review_count"`
	Highlights       []string `json:"highlights" db:"highlights"`
	Featured         bool     `json:"featured" db:"featured"`
}

// Category groups tours on the catalog page. Count is hand-authored and is a
// display hint only; it may drift from the real number of tours.
type Category struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Count int    `json:"count" db:"count"`
}

// CategoryCount is a category together with the number of catalog tours
// that actually reference it.
type CategoryCount struct {
	Category
	LiveCount int `json:"live_count"`
}

// TourCard is a tour decorated for rendering
type TourCard struct {
	Tour
	IsFavorite bool `json:"is_favorite"`
}
