package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// Contract represents the contracts table
type Contract struct {
	ID          string           `gorm:"column:id;primaryKey;type:uuid"`
	Network     domain.NetworkID `gorm:"column:network;not null"`
	Address     string           `gorm:"column:address;not null"`
	Name        string           `gorm:"column:name;not null"`
	ABI         datatypes.JSON   `gorm:"column:abi;type:jsonb"` // empty means the contract is not scanned
	StartHeight uint64           `gorm:"column:start_height;not null"`
	Enabled     bool             `gorm:"column:enabled;not null"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Contract) TableName() string {
	return "contracts"
}

// Scannable reports whether the contract takes part in syncing
func (c *Contract) Scannable() bool {
	return c.Enabled && len(c.ABI) > 0
}
