package model

import "time"

// SessionTypeContest 比赛课，可排在任意工作日
const SessionTypeContest = "contest"

// ClassSession 单次课程记录，每个班级(cohort)一张独立的表
// swagger:model
type ClassSession struct {
	ID                     int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	WeekNumber             int       `gorm:"column:week_number" json:"week_number"`
	SessionNumber          int       `gorm:"column:session_number" json:"session_number"`
	Date                   string    `gorm:"column:date;type:text" json:"date"`
	Time                   string    `gorm:"column:time;type:text" json:"time"`
	Day                    string    `gorm:"column:day;type:text" json:"day"`
	SessionType            string    `gorm:"column:session_type;type:text" json:"session_type"`
	SubjectType            string    `gorm:"column:subject_type;type:text" json:"subject_type"`
	SubjectName            string    `gorm:"column:subject_name;type:text" json:"subject_name"`
	SubjectTopic           string    `gorm:"column:subject_topic;type:text" json:"subject_topic"`
	InitialSessionMaterial string    `gorm:"column:initial_session_material;type:text" json:"initial_session_material"`
	SessionMaterial        string    `gorm:"column:session_material;type:text" json:"session_material"`
	SessionRecording       string    `gorm:"column:session_recording;type:text" json:"session_recording"`
	CreatedAt              time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (s ClassSession) IsContest() bool {
	return s.SessionType == SessionTypeContest
}
