// Package wqlog provides workqueue.Logger adapters for real logging
// libraries, grounded on kart-io-notifyhub/logger/adapters.LogrusAdapter.
package wqlog

import (
	"github.com/sirupsen/logrus"

	"github.com/kart-io/workqueue"
)

// Logrus adapts a *logrus.Logger to workqueue.Logger.
type Logrus struct {
	entry *logrus.Entry
}

// NewLogrus wraps l for use as a queue's Logger.
func NewLogrus(l *logrus.Logger) workqueue.Logger {
	return &Logrus{entry: logrus.NewEntry(l)}
}

func (l *Logrus) withFields(args ...any) *logrus.Entry {
	if len(args) == 0 {
		return l.entry
	}
	fields := make(logrus.Fields, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		fields[key] = args[i+1]
	}
	return l.entry.WithFields(fields)
}

func (l *Logrus) Info(msg string, args ...any)  { l.withFields(args...).Info(msg) }
func (l *Logrus) Warn(msg string, args ...any)  { l.withFields(args...).Warn(msg) }
func (l *Logrus) Error(msg string, args ...any) { l.withFields(args...).Error(msg) }
func (l *Logrus) Debug(msg string, args ...any) { l.withFields(args...).Debug(msg) }
