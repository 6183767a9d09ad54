package extractor

// Card represents one listing-page fragment describing a single clinic
type Card struct {
	Rank          *int         `json:"rank"`
	Name          string       `json:"name"`
	ClinicURL     string       `json:"clinic_url"`
	SourceURL     string       `json:"source_url"`
	Rating        *float64     `json:"rating"`
	Reviews       *int         `json:"reviews"`
	Snippet       string       `json:"snippet"`
	SnippetAuthor string       `json:"snippet_author"`
	Images        []string     `json:"images"`
	Features      []string     `json:"features"`
	Access        string       `json:"access"`
	Menus         []Menu       `json:"menus"`
	Hours         []HoursEntry `json:"hours"`
}

// Menu represents one treatment menu entry nested inside a card
type Menu struct {
	Title    string `json:"title"`
	PriceJPY *int   `json:"price_jpy"`
	PriceRaw string `json:"price_raw"`
	URL      string `json:"url"`
	Pickup   bool   `json:"pickup_flag"`
	Category string `json:"category_raw"`
	ImageURL string `json:"image_url"`
}

// HoursEntry represents one weekday row of a clinic's business hours table
type HoursEntry struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
	Raw   string `json:"raw"`
}
