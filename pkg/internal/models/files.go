package models

// SharedFile tracks an object uploaded through the file sharing
// endpoints. The bytes themselves live in object storage; ObjectKey is
// the full key inside the configured bucket.
type SharedFile struct {
	BaseModel

	AccountEmail string `json:"account_email" gorm:"index"`
	FileName     string `json:"file_name"`
	ObjectKey    string `json:"object_key" gorm:"uniqueIndex"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type"`
	IsUploaded   bool   `json:"is_uploaded"`

	MeetingID *uint `json:"meeting_id"`
}
