package curator

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIdHeader = "X-Request-Id"
	requestIdKey    = "requestId"

	indexTemplate = "index.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

func (c *Curator) generateRouter() (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"selected": slices.Contains[[]string, string],
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	router := gin.Default()
	router.Use(requestId())
	router.SetHTMLTemplate(tmpl)

	router.GET("/", func(ctx *gin.Context) {
		ctx.HTML(http.StatusOK, indexTemplate, c.Idle())
	})

	router.POST("/", func(ctx *gin.Context) {
		submission := Submission{
			Identifier: strings.TrimSpace(ctx.PostForm("object_number")),
			Interests:  ctx.PostFormArray("interests"),
		}
		if submission.Identifier == "" {
			submission.Identifier = strings.TrimSpace(ctx.PostForm("object_id"))
		}

		slog.Info("processing submission",
			"requestId", ctx.GetString(requestIdKey),
			"identifier", submission.Identifier,
			"interests", submission.Interests,
		)

		ctx.HTML(http.StatusOK, indexTemplate, c.Process(ctx.Request.Context(), submission))
	})

	return router, nil
}

func requestId() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(requestIdKey, id)
		ctx.Header(requestIdHeader, id)
		ctx.Next()
	}
}

func (c *Curator) GetRouter() *gin.Engine {
	return c.apiRouter
}

// StartServer binds the listen address before returning so that a taken port
// fails startup instead of being logged from the serving goroutine.
func (c *Curator) StartServer(ctx context.Context) error {
	slog.Info("starting server", "port", c.apiIpPort)

	if c.apiIpPort == "" {
		slog.Info("api ip port is empty, skipping server")
		return nil
	}

	ln, err := net.Listen("tcp", c.apiIpPort)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	c.listenAddr = ln.Addr().String()
	slog.Info("server listening", "addr", c.listenAddr)

	server := &http.Server{
		Handler:           c.apiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	return nil
}
