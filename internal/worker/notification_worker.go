package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/lodging-service/internal/service"
)

// StartNotificationWorker registers notification handlers and runs release
// once ctx is cancelled. The returned channel closes after release returns.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, release func(), logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if notificationService == nil {
		close(done)
		return done
	}
	notificationService.RegisterHandlers()
	logger.Info("notification worker started")

	go func() {
		defer close(done)
		<-ctx.Done()
		if release != nil {
			release()
		}
		logger.Info("notification worker stopped")
	}()
	return done
}
