package models

// Diary entry types.
const (
	DiaryImage = "image"
	DiaryVideo = "video"
)

// DiaryEntry is a link to an image or an embeddable video.
type DiaryEntry struct {
	ID   string `json:"id"`
	Link string `json:"link"`
	Type string `json:"type"`
}

// UploadTicket tells the client where to PUT an image and which link to
// store once the upload has finished.
type UploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	Link      string `json:"link"`
}
