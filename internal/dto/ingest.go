package dto

// ProcessScheduleRequest is the body of POST /api/process-schedule.
// Exactly one of Base64Image or FilePath must be given.
type ProcessScheduleRequest struct {
	FileName    string `json:"fileName"`
	Base64Image string `json:"base64Image,omitempty"`
	FilePath    string `json:"filePath,omitempty"`
}

// ProcessScheduleResponse reports an ingestion run.
type ProcessScheduleResponse struct {
	ClassesFound    int `json:"classesFound"`
	ClassesInserted int `json:"classesInserted"`
}
