package library

import "time"

// Author is the aggregate root owning its books.
type Author struct {
	ID    uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string  `gorm:"not null;column:name" json:"name"`
	Email string  `gorm:"column:email;index" json:"email"`
	Books []*Book `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"books,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Author) TableName() string { return "authors" }

// BookIDs returns the ids of persisted books, skipping unsaved ones.
func (a *Author) BookIDs() []uint {
	if a == nil {
		return nil
	}
	out := make([]uint, 0, len(a.Books))
	for _, b := range a.Books {
		if b != nil && b.ID != 0 {
			out = append(out, b.ID)
		}
	}
	return out
}
