package model

// Class is one weekly recurring class meeting, stored in table classes.
//
// ClassCode is not unique: multi-session courses keep one row per meeting.
// Times are wall-clock "HH:MM:SS" strings in the configured local timezone;
// start < end is enforced by the schema, overlap between rows is permitted.
type Class struct {
	ID                  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID              string `gorm:"type:uuid;not null"                             json:"user_id"`
	ClassCode           string `gorm:"type:varchar(20);not null"                      json:"class_code"`
	ClassName           string `gorm:"type:varchar(200);not null"                     json:"class_name"`
	Location            string `gorm:"type:varchar(200);not null;default:''"          json:"location"`
	DaysOfWeek          string `gorm:"type:varchar(3);not null"                       json:"days_of_week"` // Sun..Sat
	StartTime           string `gorm:"type:time;not null"                             json:"start_time"`   // HH:MM:SS
	EndTime             string `gorm:"type:time;not null"                             json:"end_time"`     // HH:MM:SS
	InstructorName      string `gorm:"type:varchar(200);not null;default:''"          json:"instructor_name"`
	BringItems          string `gorm:"type:text;not null;default:''"                  json:"bring_items"`
	RemindBeforeMinutes int    `gorm:"not null;default:30"                            json:"remind_before_minutes"`
	Active              bool   `gorm:"not null;default:true"                          json:"active"`
	BaseModel
}

// TableName maps to the classes table.
func (Class) TableName() string { return "classes" }
