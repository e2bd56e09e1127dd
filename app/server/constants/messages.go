package constants

// 返回给客户端的提示信息
const (
	MessageUserFieldsRequired = "Username and password required"
	MessageInvalidRole        = "Role must be user or admin"
	MessageUserExists         = "User already exists"
	MessageUserRegistered     = "User %s registered successfully!"
	MessageInvalidCredentials = "Invalid credentials"
	MessageTokenMissing       = "Token is missing!"
	MessageTokenMalformed     = "Token is malformed!"
	MessageTokenInvalid       = "Token is invalid!"
	MessageAdminRequired      = "Admin privilege required"
	MessageBookFieldsRequired = "Title and author required"
	MessageBookNotFound       = "Book not found"
	MessageBookDeleted        = "Book deleted"
)
