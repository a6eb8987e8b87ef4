package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeInvalidCourse = "INVALID_COURSE"
	ErrCodeInvalidPrice  = "INVALID_PRICE"
	ErrCodeItemNotFound  = "ITEM_NOT_FOUND"
	ErrCodeDuplicateID   = "DUPLICATE_ID"
	ErrCodeUnauthorised  = "UNAUTHORIZED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMissingField  = NewDomainError(ErrCodeMissingField, "Please fill in all fields")
	ErrInvalidCourse = NewDomainError(ErrCodeInvalidCourse, "Course must be one of Starters, Mains, Dessert or Drinks")
	ErrInvalidPrice  = NewDomainError(ErrCodeInvalidPrice, "Please enter a valid price")
	ErrItemNotFound  = NewDomainError(ErrCodeItemNotFound, "Menu item not found")
	ErrDuplicateID   = NewDomainError(ErrCodeDuplicateID, "Menu item ID already in use")
)
