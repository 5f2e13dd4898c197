package messages

import "mortarEditor/internal/session"

// NotificationMsg carries a session notification into the program loop.
type NotificationMsg struct {
	session.Notification
}

// OperationDoneMsg reports the end of an operation run as a command.
type OperationDoneMsg struct {
	Op  string
	Err error
}

// AutoCloseMsg clears the status toast with the matching sequence number.
type AutoCloseMsg struct {
	Seq int
}
