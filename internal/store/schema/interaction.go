package schema

import (
	"time"

	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// WalletInteraction represents the wallet_interactions table.
// One row per (network, contract, event, wallet), recording the first sighting.
type WalletInteraction struct {
	ID        int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Wallet    string           `gorm:"column:wallet;not null"`
	Contract  string           `gorm:"column:contract;not null"`
	Network   domain.NetworkID `gorm:"column:network;not null"`
	EventName string           `gorm:"column:event_name;not null"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (WalletInteraction) TableName() string {
	return "wallet_interactions"
}

// Event represents the events table
type Event struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	BlockNumber     uint64    `gorm:"column:block_number;not null"`
	TransactionHash string    `gorm:"column:transaction_hash;not null"`
	Event           string    `gorm:"column:event;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Event) TableName() string {
	return "events"
}
