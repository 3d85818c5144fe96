package model

import "time"

// Meeting 通过第三方会议服务创建的在线课堂
// swagger:model
type Meeting struct {
	Model
	ProviderID string    `gorm:"size:64;index" json:"providerId"`
	Topic      string    `gorm:"size:200;not null" json:"topic"`
	Agenda     string    `gorm:"type:text" json:"agenda"`
	StartTime  time.Time `json:"startTime"`
	Duration   int       `json:"duration"`
	JoinURL    string    `gorm:"size:500" json:"joinUrl"`
	StartURL   string    `gorm:"type:text" json:"-"`
	Password   string    `gorm:"size:32" json:"password"`
	Table      string    `gorm:"column:table_name;size:64;index" json:"tableName,omitempty"`
	SessionID  int       `json:"sessionId,omitempty"`
	CreatedBy  string    `gorm:"size:64" json:"createdBy"`
}

func (Meeting) TableName() string {
	return "meetings"
}
