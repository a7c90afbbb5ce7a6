// config/logger.go
package config

import "go.uber.org/zap"

var logger *zap.Logger

func InitLogger(prod bool) error {
	if logger != nil {
		return nil
	}
	var err error
	if prod {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	return err
}

func Logger() *zap.Logger {
	if logger == nil {
		panic("logger not initialized")
	}
	return logger
}
