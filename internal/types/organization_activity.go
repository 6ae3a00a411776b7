package types

// OrganizationActivity is a pure join row with no independent lifecycle; it is
// created and destroyed as a side effect of association changes.
type OrganizationActivity struct {
	OrganizationID uint `gorm:"primaryKey;column:organization_id" json:"organization_id"`
	ActivityID     uint `gorm:"primaryKey;column:activity_id" json:"activity_id"`
}

func (OrganizationActivity) TableName() string { return "organization_activities" }
