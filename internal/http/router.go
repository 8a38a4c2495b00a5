// Package http exposes the conversion pipeline over a small HTTP
// surface: upload a CSV, receive the rendered document.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rohit196/Text-Analytics/internal/batch"
)

type RouterConfig struct {
	Options batch.Options
	Version string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	health := NewHealthController(cfg.Version)
	convert := NewConvertController(cfg.Options)

	router.GET("/health", health.Status)
	router.POST("/api/convert", convert.Convert)

	return router
}
