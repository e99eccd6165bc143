package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeImage = "image/"
	MimePDF   = "application/pdf"
	MimeZip   = "application/zip"
	MimeText  = "text/plain"
)

var (
	// 作业参考资料允许的类型
	AllowedReferenceTypes = []string{MimePDF, MimeImage, MimeZip, MimeText}
	AllowedImageTypes     = []string{MimeImage}
)
