// Package logger is the logging surface used across scenecall.
//
// Arguments are loosely typed, the first one is normally a message.
package logger

type Logger interface {
	Info(...any)
	Debug(...any)
	Error(...any)
}
