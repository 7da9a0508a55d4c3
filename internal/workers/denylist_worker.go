package workers

import (
	"context"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/services"
)

// DenyListWorker периодически чистит истекшие записи deny-list.
// Чистка не влияет на корректность: истекший токен отклоняется
// проверкой срока действия независимо от deny-list.
type DenyListWorker struct {
	denyList *services.TokenDenyList
	interval time.Duration
}

func NewDenyListWorker(denyList *services.TokenDenyList, interval time.Duration) *DenyListWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &DenyListWorker{
		denyList: denyList,
		interval: interval,
	}
}

// Start запускает фоновую чистку
func (w *DenyListWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *DenyListWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("deny list worker stopped")
			return
		case <-ticker.C:
			w.denyList.CleanupExpired()
		}
	}
}
