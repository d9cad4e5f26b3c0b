package errors

type ErrorCode string

const (
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCreateFailed       ErrorCode = "CREATE_FAILED"
	ErrGetFailed          ErrorCode = "GET_FAILED"
	ErrUpdateFailed       ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed       ErrorCode = "DELETE_FAILED"

	// Scheduling-specific codes
	ErrLockContention ErrorCode = "LOCK_CONTENTION"
	ErrSlotTaken      ErrorCode = "SLOT_TAKEN"
)

// AppError is the error type every service returns. Code drives the HTTP
// status mapping in core/controller.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
