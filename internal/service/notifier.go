package service

import (
	"context"

	"go.uber.org/zap"
)

// Notifier is the fire-and-forget sink for user-visible messages. Calls are
// never awaited by the services; a failing sink must not block a mutation.
type Notifier interface {
	Notify(ctx context.Context, level, message string)
}

// ZapNotifier routes notifications to the global logger.
type ZapNotifier struct{}

func NewZapNotifier() *ZapNotifier {
	return &ZapNotifier{}
}

func (n *ZapNotifier) Notify(_ context.Context, level, message string) {
	switch level {
	case "warn":
		zap.L().Warn(message)
	case "error":
		zap.L().Error(message)
	default:
		zap.L().Info(message)
	}
}
