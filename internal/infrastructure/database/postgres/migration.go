// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/bookmarket-backend/internal/domain/book"
	"github.com/your-org/bookmarket-backend/internal/domain/order"
	"github.com/your-org/bookmarket-backend/internal/domain/review"
	"github.com/your-org/bookmarket-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order; order_books is created by the
	// many2many association on Order.
	models := []interface{}{
		&user.User{},
		&user.Address{},
		&book.Book{},
		&order.Order{},
		&review.Review{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_users_is_seller ON users(is_seller)",

		// Address indexes
		"CREATE INDEX IF NOT EXISTS idx_addresses_user_default ON addresses(user_id, is_default)",

		// Book indexes
		"CREATE INDEX IF NOT EXISTS idx_books_seller_status ON books(seller_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_books_price ON books(price)",
		"CREATE INDEX IF NOT EXISTS idx_books_created_at ON books(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date DESC)",

		// Review indexes
		"CREATE INDEX IF NOT EXISTS idx_reviews_seller_created ON reviews(seller_id, created_at DESC)",

		// Junction indexes
		"CREATE INDEX IF NOT EXISTS idx_order_books_book ON order_books(book_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// RunAllMigrations runs auto-migrations followed by index creation
func (m *Migration) RunAllMigrations() error {
	if err := m.RunAutoMigrations(); err != nil {
		return err
	}
	if err := m.CreateIndexes(); err != nil {
		return err
	}
	return nil
}
