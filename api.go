package handler

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"greengrass/internal/api"
	"greengrass/internal/app"
	"greengrass/internal/config"
	"greengrass/internal/logger"

	"github.com/gin-gonic/gin"
)

var (
	router  *gin.Engine
	initErr error
	once    sync.Once
)

// initRouter builds the API once per serverless instance.
func initRouter() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	cfg.Env = "production"

	log := logger.New(cfg.LogLevel)

	a, err := app.Open(context.Background(), cfg, log)
	if err != nil {
		initErr = err
		return
	}

	router = api.New(cfg, log, a.DB, a.Store, a.Redis).GetRouter()
}

// Handler is the serverless entrypoint.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(initRouter)

	if initErr != nil {
		http.Error(w, fmt.Sprintf("Initialization failed: %v", initErr), http.StatusInternalServerError)
		return
	}

	router.ServeHTTP(w, r)
}
