package models

// Chat создаётся внешним сервисом (дашбордом), здесь только читается.
type Chat struct {
	ID   uint   `gorm:"primaryKey" json:"chat_id"`
	Name string `gorm:"not null" json:"chat_name"`

	// Связи
	Members  []User    `gorm:"many2many:chat_members" json:"-"`
	Messages []Message `gorm:"foreignKey:ChatID" json:"-"`
}
