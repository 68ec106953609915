package dto

// FileDownloadResponse freshly presigned link
type FileDownloadResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expiresIn"`
}
