package types

// PhoneNumber rows are exclusively owned by one organization; Number is
// already E.164 when it reaches the store.
type PhoneNumber struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Number         string `gorm:"not null;column:number" json:"number"`
	OrganizationID uint   `gorm:"not null;index;column:organization_id" json:"organization_id"`
}

func (PhoneNumber) TableName() string { return "phone_numbers" }
