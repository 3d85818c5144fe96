package model

// ShiftLog 调课记录，每次应用调课写入一条
// swagger:model
type ShiftLog struct {
	UUIDModel
	Table        string `gorm:"column:table_name;size:64;index" json:"tableName"`
	SessionID    int    `json:"sessionId"`
	OldDate      string `gorm:"size:10" json:"oldDate"`
	NewDate      string `gorm:"size:10" json:"newDate"`
	UpdatedCount int    `json:"updatedCount"`
	FailedCount  int    `json:"failedCount"`
	Operator     string `gorm:"size:64" json:"operator"`
}

func (ShiftLog) TableName() string {
	return "schedule_shift_logs"
}
