package schema

import "time"

// EventListener represents the event_listeners table
type EventListener struct {
	ID         string    `gorm:"column:id;primaryKey;type:uuid"`
	ContractID string    `gorm:"column:contract_id;not null;type:uuid"`
	Name       string    `gorm:"column:name;not null"` // event name as declared in the contract ABI
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (EventListener) TableName() string {
	return "event_listeners"
}

// PromptlySync represents the promptly_syncs table
type PromptlySync struct {
	ID              string    `gorm:"column:id;primaryKey;type:uuid"`
	EventListenerID string    `gorm:"column:event_listener_id;not null;type:uuid"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PromptlySync) TableName() string {
	return "promptly_syncs"
}
