package store

import (
	"context"
	"fmt"

	"github.com/zulandar/postbox/internal/models"
	"gorm.io/gorm"
)

// Store provides keyed message persistence with an author secondary index.
// The table name is fixed at construction (configurable per deployment).
type Store struct {
	db    *gorm.DB
	table string
}

// New creates a Store over an open GORM connection.
func New(db *gorm.DB, table string) *Store {
	if table == "" {
		table = "messages"
	}
	return &Store{db: db, table: table}
}

// Migrate creates or updates the messages table.
func (s *Store) Migrate() error {
	if err := s.db.Table(s.table).AutoMigrate(&models.Message{}); err != nil {
		return fmt.Errorf("store: migrate %s: %w", s.table, err)
	}
	return nil
}

// Put durably writes a message keyed by its id. The message is never
// updated afterwards; a duplicate id is an error.
func (s *Store) Put(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		return fmt.Errorf("store: message id is required")
	}
	if err := s.db.WithContext(ctx).Table(s.table).Create(msg).Error; err != nil {
		return fmt.Errorf("store: put %s: %w", msg.ID, err)
	}
	return nil
}

// ByAuthor returns all messages with the given author, in store order.
// The result is never nil: zero matches yield an empty slice.
func (s *Store) ByAuthor(ctx context.Context, author string) ([]models.Message, error) {
	if author == "" {
		return nil, fmt.Errorf("store: author is required")
	}
	msgs := make([]models.Message, 0)
	if err := s.db.WithContext(ctx).Table(s.table).
		Where("username = ?", author).Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("store: by author %s: %w", author, err)
	}
	return msgs, nil
}

// AuthorCount holds a per-author message count for digest reporting.
type AuthorCount struct {
	Author string `gorm:"column:username" json:"username"`
	Count  int64  `gorm:"column:count" json:"count"`
}

// CountSince returns per-author counts of messages created at or after the
// given millisecond timestamp, busiest author first.
func (s *Store) CountSince(ctx context.Context, since int64) ([]AuthorCount, error) {
	counts := make([]AuthorCount, 0)
	if err := s.db.WithContext(ctx).Table(s.table).
		Select("username, count(*) as count").
		Where("created_at >= ?", since).
		Group("username").
		Order("count DESC").
		Find(&counts).Error; err != nil {
		return nil, fmt.Errorf("store: count since %d: %w", since, err)
	}
	return counts, nil
}
