package models

// User принадлежит внешнему сервису, читается ради имени отправителя.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// Связи
	Chats []Chat `gorm:"many2many:chat_members" json:"-"`
}
