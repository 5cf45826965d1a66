package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerProfile is a garage customer and the bike they bring in.
type CustomerProfile struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index" json:"createdByUserId"`

	Name       string `gorm:"not null" json:"name"`
	Phone      string `gorm:"not null;index" json:"phone"`
	Address    string `json:"address"`
	BikeModel  string `json:"bikeModel"`
	BikeNumber string `gorm:"not null;index" json:"bikeNumber"`
	KMReading  int64  `gorm:"default:0" json:"kmReading"`
	FuelLevel  string `json:"fuelLevel"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *CustomerProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
