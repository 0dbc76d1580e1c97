package errors

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

// AppError 业务错误，携带错误码和提示信息
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// New 创建业务错误
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewInvalidParam 参数/校验错误
func NewInvalidParam(message string) *AppError {
	return New(CodeInvalidParam, message)
}

// NewUnauthorized 未认证错误
func NewUnauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

// NewForbidden 无权限错误
func NewForbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

// NewNotFound 资源不存在错误
func NewNotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

// NewConflict 冲突错误（预留给并发席位竞争场景）
func NewConflict(message string) *AppError {
	return New(CodeConflict, message)
}

// NewServerError 服务器内部错误
func NewServerError(message string) *AppError {
	return New(CodeServerError, message)
}
