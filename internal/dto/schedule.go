package dto

// ClassBlock is one merged display block of the daily schedule.
type ClassBlock struct {
	ClassCode      string `json:"class_code"`
	ClassName      string `json:"class_name"`
	Location       string `json:"location"`
	Day            string `json:"day"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	InstructorName string `json:"instructor_name,omitempty"`
	BringItems     string `json:"bring_items,omitempty"`
}

// ScheduleResponse is the day-schedule payload of the control surface.
type ScheduleResponse struct {
	Day     string       `json:"day"`
	Classes []ClassBlock `json:"classes"`
}

// CompletedClass is a class counted as done because notes were uploaded
// for it today.
type CompletedClass struct {
	ClassCode  string `json:"class_code"`
	ClassName  string `json:"class_name"`
	UploadedAt string `json:"uploaded_at"`
}
