package library

import "time"

type Book struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string  `gorm:"not null;column:title" json:"title"`
	ISBN     string  `gorm:"column:isbn;index" json:"isbn"`
	AuthorID *uint   `gorm:"column:author_id;index" json:"author_id"`
	Author   *Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Book) TableName() string { return "books" }

// Persisted reports whether persistence has assigned the book an identity.
func (b *Book) Persisted() bool { return b != nil && b.ID != 0 }

// OwnedBy reports whether the book's author reference points at authorID.
func (b *Book) OwnedBy(authorID uint) bool {
	return b != nil && b.AuthorID != nil && *b.AuthorID == authorID
}
