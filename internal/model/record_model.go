package model

import (
	"time"

	"gorm.io/datatypes"
)

type Record struct {
	Id         string         `gorm:"type:char(24);primaryKey"`
	Collection string         `gorm:"type:varchar(100);not null;index"`
	Document   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedBy  string         `gorm:"type:varchar(50);index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index"`
}

func (Record) TableName() string {
	return "records"
}
