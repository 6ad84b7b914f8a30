package server

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartPprofServer serves pprof on a separate address. It should only be
// reachable internally.
func StartPprofServer(addr string, logger *zap.Logger) *http.Server {
	r := gin.New()
	pprof.Register(r)

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		logger.Info("Starting pprof server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server error", zap.Error(err))
		}
	}()
	return srv
}
