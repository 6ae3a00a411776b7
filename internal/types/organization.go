package types

type Organization struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"uniqueIndex;not null;column:name" json:"name"`
	BuildingID uint   `gorm:"not null;index;column:building_id" json:"building_id"`

	Building *Building `gorm:"foreignKey:BuildingID;references:ID" json:"building,omitempty"`
}

func (Organization) TableName() string { return "organizations" }
