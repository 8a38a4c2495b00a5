package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rohit196/Text-Analytics/internal/batch"
	"github.com/rohit196/Text-Analytics/internal/config"
	"github.com/rohit196/Text-Analytics/internal/normalize"
	"github.com/rohit196/Text-Analytics/internal/render"
	"github.com/rohit196/Text-Analytics/internal/styles"
	http_controllers "github.com/rohit196/Text-Analytics/internal/http"
)

// Serve runs the HTTP server until an interrupt, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the conversion options from config and starts the server.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting highlights converter v%s", version)

	style, err := styles.Load(cfg.Convert.StylePath)
	if err != nil {
		log.Fatalf("Failed to load style config: %v", err)
	}

	format, err := render.ParseFormat(cfg.Convert.Format)
	if err != nil {
		log.Fatalf("Invalid output format: %v", err)
	}
	if format == render.FormatPDF {
		// The upload endpoint returns documents inline; PDF needs a
		// browser and stays a CLI concern
		format = render.FormatHTML
	}

	opts := batch.Options{
		Style:          style,
		Format:         format,
		QuoteMode:      normalize.Mode(cfg.Convert.QuoteMode),
		MaxFieldLength: cfg.Convert.MaxFieldLength,
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Options: opts,
		Version: version,
	})

	Serve(router, cfg)
}
