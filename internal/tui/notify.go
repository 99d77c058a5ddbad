package tui

// Level of a notice
type Level int

const (
	LevelSuccess Level = iota
	LevelWarn
	LevelError
)

// notice is one message for the status line
type notice struct {
	level Level
	text  string
}

// Notifier queues board store messages for the status line. It never
// blocks; when the queue is full the oldest pending notice wins.
type Notifier struct {
	ch chan notice
}

// NewNotifier creates a Notifier
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan notice, 16)}
}

func (n *Notifier) Success(msg string) { n.push(LevelSuccess, msg) }
func (n *Notifier) Warn(msg string)    { n.push(LevelWarn, msg) }
func (n *Notifier) Error(msg string)   { n.push(LevelError, msg) }

func (n *Notifier) push(level Level, msg string) {
	select {
	case n.ch <- notice{level: level, text: msg}:
	default:
	}
}

func (n notice) String() string {
	switch n.level {
	case LevelSuccess:
		return SuccessStyle.Render(n.text)
	case LevelWarn:
		return WarnStyle.Render(n.text)
	default:
		return ErrorStyle.Render(n.text)
	}
}
