package errbagheader

const (
	HeaderContentType = "Content-Type"
	HeaderSetCookie   = "Set-Cookie"
)

const (
	ContentTypeJSON      = "application/json"
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
)
