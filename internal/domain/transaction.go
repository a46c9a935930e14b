package domain

import "time" // Timestamps

// Transaction Model
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`                                    // Primary key
	CategoryID  int64     `gorm:"not null;index"`                                // Category reference
	TotalAmount int64     `gorm:"not null"`                                      // Total in the smallest currency unit
	UsedDate    time.Time `gorm:"type:date;not null;index"`                      // Day the money was spent
	Name        string    `gorm:"not null"`                                      // Label
	Memo        *string   `gorm:"size:1024"`                                     // Optional free text
	CreatedAt   time.Time `gorm:"autoCreateTime"`                                // Set by GORM on insert
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`                                // Set by GORM on insert and update
	Splits      []Split   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Owned splits
}

// Split Model
type Split struct {
	ID            uint  `gorm:"primaryKey"`                                 // Primary key
	TransactionID uint  `gorm:"not null;uniqueIndex:idx_split_participant"` // Foreign key to Transaction
	UserID        int64 `gorm:"not null;uniqueIndex:idx_split_participant"` // Participant bearing the cost
	Amount        int64 `gorm:"not null"`                                   // Share in the smallest currency unit
}

// TableName keeps split rows in transaction_splits
func (Split) TableName() string {
	return "transaction_splits"
}
