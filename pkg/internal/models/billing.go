package models

// BillingAccount maps a dashboard user to their customer record at the
// payments provider.
type BillingAccount struct {
	BaseModel

	AccountEmail string `json:"account_email" gorm:"uniqueIndex"`
	CustomerID   string `json:"customer_id"`
}
