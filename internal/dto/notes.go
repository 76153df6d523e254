package dto

// CreateNoteRequest is the body of POST /api/v1/notes.
type CreateNoteRequest struct {
	ClassCode   string `json:"class_code" binding:"required"`
	NoteContent string `json:"note_content" binding:"required"`
	NoteType    string `json:"note_type"`
}

// NoteResponse is one stored note with its class context.
type NoteResponse struct {
	ID          string `json:"id"`
	ClassCode   string `json:"class_code"`
	ClassName   string `json:"class_name"`
	NoteContent string `json:"note_content"`
	NoteType    string `json:"note_type"`
	UploadDate  string `json:"upload_date"`
}
