package log

import (
	"io"
	"slices"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level = logrus.Level

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

func init() {
	// Filtering is done per module, logrus must let everything through.
	logrus.SetLevel(logrus.DebugLevel)
}

// SetOutput redirects all logs to w. Colors are only worth enabling when w is
// a terminal.
func SetOutput(w io.Writer, colors bool) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:   colors,
		DisableColors: !colors,
	})
}

// A Context adds its own fields to every log entry, for example the current
// frame number of a running machine.
type Context interface {
	AddLogContext(z *EntryZ)
}

var contexts []Context

func AddContext(c Context) {
	contexts = append(contexts, c)
}

func RemoveContext(c Context) {
	contexts = slices.DeleteFunc(contexts, func(cur Context) bool { return cur == c })
}

func addContexts(z *EntryZ) {
	for _, c := range contexts {
		c.AddLogContext(z)
	}
}
