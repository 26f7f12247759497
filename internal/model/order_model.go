package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Order struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Address   string         `gorm:"type:text;not null"`
	Phone     string         `gorm:"type:varchar(50);not null"`
	Email     string         `gorm:"type:varchar(255)"`
	Urgency   string         `gorm:"type:varchar(50);default:'medium'"`
	Payment   datatypes.JSON `gorm:"type:jsonb"`
	Items     datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	IsPackage bool           `gorm:"default:false"`
	Timestamp time.Time      `gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Order) TableName() string {
	return "orders"
}
