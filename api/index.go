package api

import (
	"log"
	"net/http"
	"sync"

	"orders-api/config"
	_ "orders-api/docs"
	"orders-api/models"
	"orders-api/server"

	"github.com/gin-gonic/gin"
)

var (
	app     *server.App
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		app, initErr = server.Build(cfg)
	})
}

// Handler is the serverless entry point. The app is built on the first
// invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		log.Printf("app init failed: %v", initErr)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"message":"Service unavailable","error":"` + models.ErrClassStore + `"}`))
		return
	}
	app.Router.ServeHTTP(w, r)
}
