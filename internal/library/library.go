// Package library persists imported books and highlights to a local
// SQLite database so documents can be re-rendered without the original
// CSV files.
package library

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rohit196/Text-Analytics/internal/entities"
)

type Library struct {
	DB *gorm.DB

	// gorm with the sqlite driver is not safe for concurrent writes
	// from the batch worker pool
	mu sync.Mutex
}

// Open opens (creating if needed) the library database at dbPath and
// migrates the schema.
func Open(dbPath string) (*Library, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Highlight{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Library{DB: db}, nil
}

func (l *Library) Close() error {
	sqlDB, err := l.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveBooks upserts books and their highlights. Books match on
// title + author; highlights match on text + location within a book,
// so re-importing the same export is a no-op. Returns the number of
// highlights created and skipped.
func (l *Library) SaveBooks(books []entities.Book) (created, skipped int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, book := range books {
		var existing entities.Book
		result := l.DB.Where("title = ? AND author = ?", book.Title, book.Author).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			existing = entities.Book{
				Title:      book.Title,
				Author:     book.Author,
				SourceFile: book.SourceFile,
			}
			if err := l.DB.Create(&existing).Error; err != nil {
				return created, skipped, fmt.Errorf("failed to create book %q: %w", book.Title, err)
			}
		} else if result.Error != nil {
			return created, skipped, fmt.Errorf("failed to look up book %q: %w", book.Title, result.Error)
		}

		for _, highlight := range book.Highlights {
			var count int64
			err := l.DB.Model(&entities.Highlight{}).
				Where("book_id = ? AND text = ? AND location = ?", existing.ID, highlight.Text, highlight.Location).
				Count(&count).Error
			if err != nil {
				return created, skipped, fmt.Errorf("failed to check highlight: %w", err)
			}
			if count > 0 {
				skipped++
				continue
			}

			highlight.BookID = existing.ID
			if err := l.DB.Create(&highlight).Error; err != nil {
				return created, skipped, fmt.Errorf("failed to create highlight: %w", err)
			}
			created++
		}
	}

	return created, skipped, nil
}

// Books returns all stored books with highlights, in insertion order.
func (l *Library) Books() ([]entities.Book, error) {
	var books []entities.Book
	err := l.DB.
		Preload("Highlights", func(db *gorm.DB) *gorm.DB {
			return db.Order("highlights.id ASC")
		}).
		Order("books.id ASC").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	return books, nil
}
