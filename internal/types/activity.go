package types

// MaxActivityLevel caps the taxonomy: roots sit at level 1 and no activity may
// be created below level 3.
const MaxActivityLevel = 3

type Activity struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"uniqueIndex;not null;column:name" json:"name"`
	ParentID *uint  `gorm:"index;column:parent_id" json:"parent_id,omitempty"`
	Level    int    `gorm:"not null;column:level" json:"level"`
}

func (Activity) TableName() string { return "activities" }
