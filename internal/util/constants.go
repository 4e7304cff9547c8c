package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 上传文件类型白名单
var (
	AllowedVideoTypes    = []string{"video/mp4", "video/webm", "video/ogg"}
	AllowedDocumentTypes = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
)

// 上传目录
const (
	FolderVideos    = "videos"
	FolderDocuments = "documents"
	FolderQuestions = "questions"
)
