package service

// Operations reported to AuthEventRecorder.
const (
	OperationRegister       = "register"
	OperationLogin          = "login"
	OperationLogout         = "logout"
	OperationRefresh        = "refresh"
	OperationChangePassword = "change_password"
	OperationAuthenticate   = "authenticate"
)

// OutcomeSuccess is the outcome label of an operation that returned no error.
// Failures are labelled with the lower-cased business error code.
const OutcomeSuccess = "success"

// AuthEventRecorder counts authentication events.
type AuthEventRecorder interface {
	RecordAuthEvent(operation, outcome string)
}
