package services

import (
	"sync"
	"time"

	"jobportal_backend/internal/logger"
)

// TokenDenyList - процесс-локальный список отозванных jti.
// Записи живут до естественного истечения токена: просроченный токен
// и так не пройдет проверку подписи/срока, поэтому фоновая чистка
// (см. workers.DenyListWorker) - только освобождение памяти.
//
// Хранилище не разделяется между инстансами сервера; для горизонтального
// масштабирования интерфейс (Revoke/IsRevoked/чистка) остается тем же,
// меняется только бэкенд.
type TokenDenyList struct {
	mu      sync.RWMutex
	entries map[string]int64 // jti -> exp (секунды эпохи)
}

func NewTokenDenyList() *TokenDenyList {
	return &TokenDenyList{
		entries: make(map[string]int64),
	}
}

// Revoke добавляет jti в deny-list до истечения expSeconds.
// Пустой jti или нулевой exp - no-op с предупреждением.
// Повторный отзыв того же jti перезаписывает запись.
func (d *TokenDenyList) Revoke(jti string, expSeconds int64) {
	if jti == "" || expSeconds == 0 {
		logger.Warn("attempted to revoke token with empty jti or exp")
		return
	}

	d.mu.Lock()
	d.entries[jti] = expSeconds
	d.mu.Unlock()

	logger.Info("token added to deny list", "jti", jti, "expires_at", time.Unix(expSeconds, 0))
}

// IsRevoked проверяет наличие jti в deny-list. Для пустого jti - false.
func (d *TokenDenyList) IsRevoked(jti string) bool {
	if jti == "" {
		return false
	}

	d.mu.RLock()
	_, revoked := d.entries[jti]
	d.mu.RUnlock()
	return revoked
}

// CleanupExpired удаляет записи, чей токен уже истек сам по себе.
// Возвращает число удаленных записей.
func (d *TokenDenyList) CleanupExpired() int {
	now := time.Now().Unix()

	d.mu.Lock()
	removed := 0
	for jti, exp := range d.entries {
		if exp < now {
			delete(d.entries, jti)
			removed++
		}
	}
	d.mu.Unlock()

	if removed > 0 {
		logger.Info("cleaned up expired denied tokens", "count", removed)
	}
	return removed
}

// Size возвращает текущее число записей
func (d *TokenDenyList) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}
