package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	global *zap.Logger
)

// Init настраивает глобальный логгер: development-конфиг для локальной работы, JSON в проде.
func Init(isDev bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if isDev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	mu.Lock()
	global = l
	mu.Unlock()
	return nil
}

// L возвращает глобальный логгер, до Init это no-op логгер.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		return zap.NewNop()
	}
	return global
}

func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if global != nil {
		_ = global.Sync()
	}
}
