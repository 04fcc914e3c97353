package models

import "time"

type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}
