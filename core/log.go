package core

// Logger is the leveled logger used at the app's boundary crossings.
// args carry structured detail (errors, key-value maps) alongside msg.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
