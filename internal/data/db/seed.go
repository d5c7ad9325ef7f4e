package db

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

// Fixtures is the YAML shape accepted by Seed.
type Fixtures struct {
	Authors []AuthorFixture `yaml:"authors"`
}

type AuthorFixture struct {
	Name  string        `yaml:"name"`
	Email string        `yaml:"email"`
	Books []BookFixture `yaml:"books"`
}

type BookFixture struct {
	Title string `yaml:"title"`
	ISBN  string `yaml:"isbn"`
}

func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(raw)
}

func ParseFixtures(raw []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, a := range f.Authors {
		if a.Name == "" {
			return nil, fmt.Errorf("parse fixtures: author %d has no name", i)
		}
		for j, b := range a.Books {
			if b.Title == "" {
				return nil, fmt.Errorf("parse fixtures: author %q book %d has no title", a.Name, j)
			}
		}
	}
	return &f, nil
}

// Seed inserts the fixtures in one transaction, authors first and then their
// books in file order, so ids on a fresh database are predictable. A database
// that already has authors is left alone.
func Seed(ctx context.Context, db *gorm.DB, log *logger.Logger, f *Fixtures) error {
	if f == nil || len(f.Authors) == 0 {
		return nil
	}
	var count int64
	if err := db.WithContext(ctx).Model(&library.Author{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count authors: %w", err)
	}
	if count > 0 {
		if log != nil {
			log.Info("Skipping seed, authors already present", "authors", count)
		}
		return nil
	}
	authors := make([]*library.Author, 0, len(f.Authors))
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, af := range f.Authors {
			a := &library.Author{Name: af.Name, Email: af.Email}
			if err := tx.Omit("Books").Create(a).Error; err != nil {
				return err
			}
			authors = append(authors, a)
		}
		for i, af := range f.Authors {
			for _, bf := range af.Books {
				authorID := authors[i].ID
				b := &library.Book{Title: bf.Title, ISBN: bf.ISBN, AuthorID: &authorID}
				if err := tx.Omit("Author").Create(b).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if log != nil {
		log.Info("Seeded fixtures", "authors", len(authors))
	}
	return nil
}
