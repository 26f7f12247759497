package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Description  string         `gorm:"type:text"`
	Utility      string         `gorm:"type:text"`
	Category     string         `gorm:"type:varchar(100);index"`
	Price        float64        `gorm:"type:numeric(12,2);default:0"`
	Availability string         `gorm:"type:varchar(50);default:'in_stock'"`
	Emoji        string         `gorm:"type:varchar(16)"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}
