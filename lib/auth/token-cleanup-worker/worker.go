package tokencleanupworker

import (
	authhandler "collab-backend/lib/auth"
	baseworker "collab-backend/lib/utils/base-worker"
	"collab-backend/lib/utils/helpers"
	"context"
	"time"
)

func StartWorker(ctx context.Context, interval time.Duration) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("TokenCleanupWorker", 15*time.Second, interval),
		auth:     authhandler.Instance,
		now:      time.Now,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	auth authhandler.Provider
	now  func() time.Time
}

func (i impl) handle(ctx context.Context) {
	if helpers.IsContextDone(ctx) {
		return
	}
	logger := i.GetLogger()
	tokens, resetCodes, err := i.auth.CleanupExpired(i.now())
	if err != nil {
		logger.WithError(err).Error("Ошибка очистки просроченных токенов")
		return
	}
	if tokens > 0 || resetCodes > 0 {
		logger.
			WithField("tokens", tokens).
			WithField("reset_codes", resetCodes).
			Info("Просроченные токены удалены")
	}
}
