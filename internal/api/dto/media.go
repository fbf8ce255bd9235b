package dto

// MediaUploadDTO 上传成功返回
type MediaUploadDTO struct {
	URL      string  `json:"url"`
	ThumbURL *string `json:"thumb_url,omitempty"`
	MimeType string  `json:"mime_type"`
}
