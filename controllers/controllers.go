// controllers/controllers.go
package controllers

import (
	"naver-booking-notifier/config"
	"naver-booking-notifier/services"
)

var (
	cfg        *config.Config
	session    *services.NaverSession
	dispatcher *services.Dispatcher
	runner     *services.BatchRunner
	store      *services.RunLogStore
)

// Setup wires the handlers to the core services. Called once from main.
func Setup(c *config.Config, s *services.NaverSession, d *services.Dispatcher, r *services.BatchRunner, st *services.RunLogStore) {
	cfg = c
	session = s
	dispatcher = d
	runner = r
	store = st
}
