package model

import "time"

type Army struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	Name              string     `gorm:"column:name"`
	FactionID         int64      `gorm:"column:faction_id"`
	Location          int64      `gorm:"column:location"`
	Manpower          int        `gorm:"column:manpower"`
	InfantryEquipment int        `gorm:"column:infantry_equipment"`
	Organization      float64    `gorm:"column:organization"`
	Status            int8       `gorm:"column:status"`
	Destination       int64      `gorm:"column:destination"`
	ArrivalAt         *time.Time `gorm:"column:arrival_at"`
}

func (Army) TableName() string {
	return "army"
}
