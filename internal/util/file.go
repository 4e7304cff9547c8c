package util

import (
	"io"
	"mime"
	"net/http"
	"strings"
)

// ValidateMimeType 读取文件头检测 MIME 类型，declared 为客户端声明的类型
// 文件头检测不出的 Office 文档等以声明类型为准
func ValidateMimeType(reader io.Reader, declared string, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	detected := http.DetectContentType(buffer[:n])
	if mt, _, err := mime.ParseMediaType(detected); err == nil {
		detected = mt
	}

	if contains(allowedTypes, detected) {
		return detected, nil
	}

	// zip/ole/ogg 容器格式只能依赖声明类型
	if detected == "application/zip" || detected == "application/ogg" || detected == "application/octet-stream" || strings.HasPrefix(detected, "application/x-ole") {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && contains(allowedTypes, mt) {
			return mt, nil
		}
	}

	return detected, ErrInvalidFileType
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/")
}
