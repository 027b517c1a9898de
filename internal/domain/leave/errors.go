package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeNameExists  = errors.New("leave type name already exists")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrAlreadyProcessed     = errors.New("leave request already processed")
	ErrNotRequestOwner      = errors.New("leave request belongs to another employee")
)
