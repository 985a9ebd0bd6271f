// Package server exposes rendered week grids over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pfrederiksen/courtgrid/internal/availability"
	"github.com/pfrederiksen/courtgrid/internal/calendar"
	"github.com/pfrederiksen/courtgrid/internal/collector"
	"github.com/pfrederiksen/courtgrid/internal/links"
	"github.com/pfrederiksen/courtgrid/internal/logger"
	"github.com/pfrederiksen/courtgrid/internal/metrics"
	"github.com/pfrederiksen/courtgrid/internal/render"
	"github.com/pfrederiksen/courtgrid/internal/scraper"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WeekSource collects week readings
type WeekSource interface {
	Collect(ctx context.Context, start time.Time, dayCount int) (*availability.WeekReading, error)
}

// Options are the fixed settings of a Server
type Options struct {
	Addr      string
	Facility  string
	Days      int
	Location  *time.Location
	SourceURL string
}

// Server serves grid images, HTML pages and calendar feeds
type Server struct {
	opts     Options
	weeks    WeekSource
	renderer *render.Renderer
	links    *links.Builder
	log      *logger.Logger
	now      func() time.Time
	engine   *gin.Engine
}

// New creates a Server and registers its routes
func New(opts Options, weeks WeekSource, renderer *render.Renderer, lb *links.Builder, log *logger.Logger) *Server {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Days <= 0 {
		opts.Days = 7
	}

	s := &Server{
		opts:     opts,
		weeks:    weeks,
		renderer: renderer,
		links:    lb,
		log:      log,
		now:      time.Now,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log), metrics.GinMiddleware())
	engine.SetHTMLTemplate(template.Must(template.New("week").Parse(weekPage)))

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/image/:facility/:year/:month/:day", s.handleImage)
	engine.GET("/ics/:facility/:year/:month/:day", s.handleCalendar)
	engine.GET("/:facility/:year/:month/:day", s.handlePage)

	s.engine = engine
	return s
}

// Handler returns the HTTP handler with all routes
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		// A week request waits on every day page
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", logger.Fields{"addr": s.opts.Addr, "facility": s.opts.Facility})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info("HTTP server stopped", nil)
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"facility": s.opts.Facility,
		"days":     s.opts.Days,
	})
}

func (s *Server) handleImage(c *gin.Context) {
	start, ok := s.startDate(c)
	if !ok {
		return
	}

	week, ok := s.collect(c, start)
	if !ok {
		return
	}

	grid, err := s.renderer.Render(week)
	if err != nil {
		s.log.Error("Rendering grid failed", logger.Fields{"start": start.Format("2006-01-02")}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering grid failed"})
		return
	}
	metrics.GridsRendered.Inc()

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", grid.PNG)
}

func (s *Server) handleCalendar(c *gin.Context) {
	start, ok := s.startDate(c)
	if !ok {
		return
	}

	week, ok := s.collect(c, start)
	if !ok {
		return
	}

	body := calendar.WeekCalendar(week, s.opts.Facility, s.opts.SourceURL)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s-%s.ics", s.opts.Facility, start.Format("20060102")))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func (s *Server) handlePage(c *gin.Context) {
	start, ok := s.startDate(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "week", weekPageData{
		Facility:      s.opts.Facility,
		Days:          s.opts.Days,
		Start:         start.Format("2006-01-02"),
		ImageURL:      s.links.ImageLink(start),
		CalendarURL:   s.links.CalendarLink(start),
		PreviousURL:   s.links.HTMLLink(start.AddDate(0, 0, -s.opts.Days)),
		NextURL:       s.links.HTMLLink(start.AddDate(0, 0, s.opts.Days)),
		GeneratedAt:   s.now().In(s.opts.Location).Format("2006-01-02 15:04:05 MST"),
		SlotLabels:    availability.SlotLabels(),
		FreeColor:     hexColor(render.DefaultPalette.Free.R, render.DefaultPalette.Free.G, render.DefaultPalette.Free.B),
		ReservedColor: hexColor(render.DefaultPalette.Reserved.R, render.DefaultPalette.Reserved.G, render.DefaultPalette.Reserved.B),
	})
}

// startDate validates the facility and date path parameters. It writes the error
// response itself and reports false when the request cannot proceed.
func (s *Server) startDate(c *gin.Context) (time.Time, bool) {
	if c.Param("facility") != s.opts.Facility {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown facility: %s", c.Param("facility"))})
		return time.Time{}, false
	}

	date, err := parseDate(c.Param("year"), c.Param("month"), c.Param("day"), s.opts.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, false
	}
	return date, true
}

func (s *Server) collect(c *gin.Context, start time.Time) (*availability.WeekReading, bool) {
	begin := time.Now()
	week, err := s.weeks.Collect(c.Request.Context(), start, s.opts.Days)
	fields := logger.Fields{
		"facility":    s.opts.Facility,
		"start":       start.Format("2006-01-02"),
		"days":        s.opts.Days,
		"duration_ms": time.Since(begin).Milliseconds(),
	}

	if err != nil {
		metrics.WeeksCollected.WithLabelValues("failed").Inc()
		status, body := errorResponse(err)
		s.log.Error("Week request failed", fields, err)
		c.JSON(status, body)
		return nil, false
	}

	metrics.WeeksCollected.WithLabelValues("ok").Inc()
	s.log.Info("Week collected", fields)
	return week, true
}

// errorResponse maps pipeline errors to an HTTP status and JSON body
func errorResponse(err error) (int, gin.H) {
	body := gin.H{"error": err.Error()}

	var pf *collector.PartialFailure
	if errors.As(err, &pf) {
		dates := make([]string, 0, len(pf.Failures))
		for _, d := range pf.Dates() {
			dates = append(dates, d.Format("2006-01-02"))
		}
		body["failed_dates"] = dates
	}

	if errors.Is(err, context.Canceled) {
		return 499, body
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, body
	}

	var fe *scraper.FetchError
	var sm *scraper.ShapeMismatchError
	if pf != nil || errors.As(err, &fe) || errors.As(err, &sm) {
		return http.StatusBadGateway, body
	}
	return http.StatusInternalServerError, body
}

// parseDate builds a date from path segments and rejects dates that do not exist
func parseDate(year, month, day string, loc *time.Location) (time.Time, error) {
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 || y > 9999 {
		return time.Time{}, fmt.Errorf("invalid year: %q", year)
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, fmt.Errorf("invalid month: %q", month)
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("invalid day: %q", day)
	}

	date := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if date.Day() != d {
		return time.Time{}, fmt.Errorf("no such date: %04d-%02d-%02d", y, m, d)
	}
	return date, nil
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
