package logging

import (
	"log"
	"sync"

	"go.uber.org/zap"
)

var once sync.Once

// Init builds the global zap logger. Call once from main; everything else
// uses zap.L().
func Init(debug bool) {
	once.Do(func() {
		var (
			logger *zap.Logger
			err    error
		)
		if debug {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			log.Fatalf("failed to init logger: %v", err)
		}
		zap.ReplaceGlobals(logger)
	})
}

// Sync flushes buffered log entries. Deferred in main.
func Sync() {
	_ = zap.L().Sync()
}
