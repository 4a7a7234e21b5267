package logger

import "github.com/rs/zerolog"

// nopLogger discards everything. Used in tests and as a safe default for
// components constructed without a logger.
type nopLogger struct {
	zerolog zerolog.Logger
}

// NewNop returns a logger that discards all messages
func NewNop() Logger {
	return &nopLogger{zerolog: zerolog.Nop()}
}

func (n *nopLogger) Debug(msg string) {}
func (n *nopLogger) Info(msg string)  {}
func (n *nopLogger) Warn(msg string)  {}
func (n *nopLogger) Error(msg string) {}
func (n *nopLogger) Fatal(msg string) {}

func (n *nopLogger) WithField(key string, value interface{}) Logger  { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger { return n }
func (n *nopLogger) WithError(err error) Logger                      { return n }

func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}

func (n *nopLogger) GetZerolog() *zerolog.Logger { return &n.zerolog }
