package entities

import "time"

type LocationType string

const (
	LocationTypePage     LocationType = "page"
	LocationTypeLocation LocationType = "location" // Kindle-style location
	LocationTypeNone     LocationType = "none"
)

// Book groups the highlights taken from a single source book.
// Highlights keep the order in which they appeared in the input.
type Book struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Title      string      `gorm:"index;size:512" json:"title"`
	Author     string      `gorm:"index;size:256" json:"author,omitempty"`
	SourceFile string      `gorm:"size:1024" json:"source_file,omitempty"`
	Highlights []Highlight `gorm:"foreignKey:BookID" json:"highlights,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type Highlight struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	BookID uint   `gorm:"index" json:"book_id"`
	Text   string `gorm:"type:text" json:"text"`
	Note   string `gorm:"type:text" json:"note,omitempty"`

	// Location information as it appeared in the export. Kept as a string
	// because exports mix numeric pages with roman numerals and ranges.
	LocationType LocationType `gorm:"size:20;default:'none'" json:"location_type"`
	Location     string       `gorm:"size:64" json:"location,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Book) TableName() string {
	return "books"
}

func (Highlight) TableName() string {
	return "highlights"
}

// HighlightCount returns the number of highlights across all books.
func HighlightCount(books []Book) int {
	total := 0
	for _, book := range books {
		total += len(book.Highlights)
	}
	return total
}
