package model

type Region struct {
	ID             int64  `gorm:"column:id;primaryKey"`
	Terrain        int8   `gorm:"column:terrain"`
	OwnerFactionID int64  `gorm:"column:owner_faction_id"`
	Channel        string `gorm:"column:channel"`
}

func (Region) TableName() string {
	return "region"
}
