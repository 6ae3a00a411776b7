package types

type Building struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Address   string  `gorm:"uniqueIndex;not null;column:address" json:"address"`
	Latitude  float64 `gorm:"not null;column:latitude" json:"latitude"`
	Longitude float64 `gorm:"not null;column:longitude" json:"longitude"`
}

func (Building) TableName() string { return "buildings" }
