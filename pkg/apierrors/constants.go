package apierrors

const (
	MsgRegistered           = "registered"
	MsgLoggedIn             = "loggedIn"
	MsgTaskCreated          = "taskCreated"
	MsgInvalidPayload       = "invalidPayload"
	MsgInvalidField         = "invalidField"
	MsgInvalidUserID        = "invalidUserID"
	MsgInvalidDeadline      = "invalidDeadline"
	MsgValidationFailed     = "validationFailed"
	MsgUsernameTaken        = "usernameTaken"
	MsgInvalidCredentials   = "invalidCredentials"
	MsgNotFound             = "notFound"
	MsgSentimentUnavailable = "sentimentUnavailable"
	MsgInternalError        = "internalError"
)
