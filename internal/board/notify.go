package board

// Notifier presents short user-facing messages, e.g. as toasts or a status line
type Notifier interface {
	Success(msg string)
	Warn(msg string)
	Error(msg string)
}

type discard struct{}

func (discard) Success(string) {}
func (discard) Warn(string)    {}
func (discard) Error(string)   {}

// Discard drops every message
var Discard Notifier = discard{}
