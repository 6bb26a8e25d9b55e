package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID            int64          `gorm:"primaryKey;column:id"`
	Name          string         `gorm:"column:name"`
	Price         float64        `gorm:"column:price"`
	StockQuantity int32          `gorm:"column:stock_quantity"`
	Tags          pq.StringArray `gorm:"column:tags;type:text[]"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;index"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	CustomerEmail string    `gorm:"column:customer_email;index"`
	TotalAmount   float64   `gorm:"column:total_amount"`
	Status        string    `gorm:"column:status;type:varchar(32);index"`
	PlacedAt      time.Time `gorm:"column:placed_at;index"`
	CreatedAt     time.Time `gorm:"column:created_at;index"`
	UpdatedAt     time.Time `gorm:"column:updated_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        int64   `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID   int64   `gorm:"column:order_id;index"`
	ProductID int64   `gorm:"column:product_id;index"`
	Quantity  int32   `gorm:"column:quantity"`
	UnitPrice float64 `gorm:"column:unit_price"`
}

func (orderItemRecord) TableName() string { return "order_items" }
