package model

type Product struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	OriginPrice Amount   `json:"origin_price"`
	Price       Amount   `json:"price"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	IsEnabled   Quantity `json:"is_enabled"` // 0 or 1
	ImageURL    string   `json:"imageUrl"`
	ImagesURL   []string `json:"imagesUrl"`
	Rating      Amount   `json:"rating"`
}

// MaxProductImages counts the main image plus every extra image.
const MaxProductImages = 5

// Normalize prepares a product for the admin create/update payload:
// is_enabled collapses to 0/1, blank image URLs are dropped and extra images
// beyond MaxProductImages are cut.
func (p Product) Normalize() Product {
	if p.IsEnabled != 0 {
		p.IsEnabled = 1
	}
	images := make([]string, 0, len(p.ImagesURL))
	for _, u := range p.ImagesURL {
		if u != "" && len(images) < MaxProductImages-1 {
			images = append(images, u)
		}
	}
	p.ImagesURL = images
	return p
}

type Pagination struct {
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	HasPre      bool   `json:"has_pre"`
	HasNext     bool   `json:"has_next"`
	Category    string `json:"category"`
}

// Page returns the current page, defaulting to 1 when the backend has not
// reported one yet.
func (p Pagination) Page() int {
	if p.CurrentPage < 1 {
		return 1
	}
	return p.CurrentPage
}
