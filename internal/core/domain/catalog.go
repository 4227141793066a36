package domain

// Course is a catalog entry for a reading course. Courses are read-only
// through the API; the collection is seeded out of band.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Instructor  string `json:"instructor,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// Book is a catalog entry in the bookshop.
type Book struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Author string  `json:"author,omitempty"`
	Image  string  `json:"image,omitempty"`
	Price  float64 `json:"price"`
}
