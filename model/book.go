// model/book.go
package model

type Book struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Author      string  `json:"author"`
	Publisher   string  `json:"publisher"`
	ReleaseYear int     `json:"release_year"`
}
