package observability

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	correlationIDKey
)

func InitLogging(level logrus.Level) {
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
}

func ToContext(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, entry)
}

func FromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(loggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// CorrelationPublisherDecorator stamps outgoing messages with the
// correlation id carried in the message context.
type CorrelationPublisherDecorator struct {
	message.Publisher
}

func (d CorrelationPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		if messages[i].Metadata.Get("correlation_id") == "" {
			messages[i].Metadata.Set("correlation_id", CorrelationIDFromContext(messages[i].Context()))
		}
	}
	return d.Publisher.Publish(topic, messages...)
}

// NewWatermill adapts a logrus entry to watermill's logger interface.
func NewWatermill(entry *logrus.Entry) watermill.LoggerAdapter {
	return watermillLogger{entry: entry}
}

type watermillLogger struct {
	entry *logrus.Entry
}

func (l watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.withFields(fields).WithError(err).Error(msg)
}

func (l watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.withFields(fields).Info(msg)
}

func (l watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.withFields(fields).Debug(msg)
}

func (l watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.withFields(fields).Trace(msg)
}

func (l watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return watermillLogger{entry: l.withFields(fields)}
}

func (l watermillLogger) withFields(fields watermill.LogFields) *logrus.Entry {
	return l.entry.WithFields(logrus.Fields(fields))
}
