package models

import (
	"time"
)

// Message неизменяемо после сохранения. ID и SentAt назначает сервер,
// SenderName — снимок имени отправителя на момент отправки.
type Message struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"message_id"`
	ChatID     uint      `gorm:"not null;index:idx_chat_sent,priority:1" json:"chat_id"`
	SenderID   uint      `gorm:"not null" json:"sender_id"`
	SenderName string    `gorm:"not null" json:"sender_name"`
	Text       string    `gorm:"column:message_text;not null" json:"message_text"`
	SentAt     time.Time `gorm:"not null;index:idx_chat_sent,priority:2" json:"sent_at"`
}
