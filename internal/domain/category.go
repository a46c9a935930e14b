package domain

// Category Model
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"` // Category id referenced by transactions
	Name string `gorm:"not null"`                       // Display name
}
