package services

import (
	"sync"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/config"
)

var timeoutsMu sync.RWMutex
var dbTimeout = 10 * time.Second
var storageTimeout = 120 * time.Second

// Configure applies the timeouts and retry backoff from cfg.
func Configure(cfg *config.Config) {
	timeoutsMu.Lock()
	if cfg.DBTimeout > 0 {
		dbTimeout = cfg.DBTimeout
	}
	if cfg.StorageTimeout > 0 {
		storageTimeout = cfg.StorageTimeout
	}
	timeoutsMu.Unlock()
	SetRetryDelay(cfg.RetryDelay)
}

func currentDBTimeout() time.Duration {
	timeoutsMu.RLock()
	defer timeoutsMu.RUnlock()
	return dbTimeout
}

func currentStorageTimeout() time.Duration {
	timeoutsMu.RLock()
	defer timeoutsMu.RUnlock()
	return storageTimeout
}
