// Package web serves the question form as a single web page.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/drkube/drkube/internal/drkube"
	"github.com/drkube/drkube/internal/logger"
	"github.com/drkube/drkube/internal/tui/ask"
)

//go:embed assets/index.html assets/drkube.svg
var assets embed.FS

// Server is the HTTP front end for DrKube.
type Server struct {
	asker  drkube.Asker
	router *gin.Engine
}

// page is the data rendered into index.html.
type page struct {
	Title       string
	Placeholder string
	LabelIdle   string
	LabelBusy   string
	Question    string
	Answer      string
}

// New builds the router. Questions are answered through asker.
func New(asker drkube.Asker) (*Server, error) {
	tmpl, err := template.ParseFS(assets, "assets/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	logo, err := assets.ReadFile("assets/drkube.svg")
	if err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}

	s := &Server{asker: asker}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.handleIndex)
	router.GET("/api/ask", s.handleAPIAsk)
	router.GET("/drkube.svg", func(c *gin.Context) {
		c.Data(http.StatusOK, "image/svg+xml", logo)
	})

	s.router = router
	return s, nil
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Web form listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Shutting down web form")
		return srv.Shutdown(shutdownCtx)
	}
}

// handleIndex renders the form. A non-blank q is submitted once and its
// answer shown below the form.
func (s *Server) handleIndex(c *gin.Context) {
	p := page{
		Title:       ask.Title,
		Placeholder: ask.Placeholder,
		LabelIdle:   ask.LabelIdle,
		LabelBusy:   ask.LabelBusy,
		Question:    c.Query("q"),
	}

	if !drkube.IsBlank(p.Question) {
		// Consult logs transport failures itself
		p.Answer, _ = drkube.Consult(c.Request.Context(), s.asker, p.Question)
	}

	c.HTML(http.StatusOK, "index.html", p)
}

// handleAPIAsk is the JSON form of the same exchange.
func (s *Server) handleAPIAsk(c *gin.Context) {
	question := c.Query("q")
	if drkube.IsBlank(question) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query cannot be empty"})
		return
	}

	answer, err := drkube.Consult(c.Request.Context(), s.asker, question)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"question": question, "answer": answer})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": question, "answer": answer})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
