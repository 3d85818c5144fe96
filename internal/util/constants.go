package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

// 课程资料类型，对应课程表中的三个链接列
const (
	MaterialInitial   = "initial"
	MaterialSession   = "session"
	MaterialRecording = "recording"
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
	AllowedMaterialTypes   = []string{MimeImage, MimePDF, MimeVideo, "application/zip", "application/vnd.openxmlformats-officedocument", "text/plain"}
)

var materialColumns = map[string]string{
	MaterialInitial:   "initial_session_material",
	MaterialSession:   "session_material",
	MaterialRecording: "session_recording",
}

// MaterialColumn 资料类型对应的列名，未知类型返回空串
func MaterialColumn(kind string) string {
	return materialColumns[kind]
}
