package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurn struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID string    `gorm:"type:varchar(100);not null;index"`
	ActorID   string    `gorm:"type:varchar(50);index"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Text      string    `gorm:"type:text;not null"`
	State     string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
