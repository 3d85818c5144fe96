package model

// Cohort 班级登记表，Table 指向该班级的课程表
// swagger:model
type Cohort struct {
	UUIDModel
	Name      string `gorm:"size:100;not null" json:"name"`
	Table     string `gorm:"column:table_name;size:64;uniqueIndex;not null" json:"tableName"`
	StartDate string `gorm:"size:10" json:"startDate"`
	Days      string `gorm:"size:100;comment:上课日，逗号分隔" json:"days"`
	CreatedBy string `gorm:"size:64" json:"createdBy"`
}

func (Cohort) TableName() string {
	return "cohorts"
}
