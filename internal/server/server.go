// Package server exposes a bridge collection over HTTP.
package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"bridges/internal/bridge"
	"bridges/internal/types"
)

// Recorder persists maintenance updates applied through the API.
type Recorder interface {
	RecordInspection(ctx context.Context, ids []int, date string, bci float64) (int, error)
	RecordRehab(ctx context.Context, id int, date string, major bool) (bool, error)
}

// Server serves queries and maintenance updates over one in-memory
// collection. Queries hold the read lock, updates the write lock.
type Server struct {
	mu       sync.RWMutex
	bridges  []*types.Bridge
	recorder Recorder
	logger   *zap.Logger
	echo     *echo.Echo
}

// New builds a server over bridges. recorder may be nil.
func New(bridges []*types.Bridge, recorder Recorder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{bridges: bridges, recorder: recorder, logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(s.logRequests)
	s.Register(e.Group(""))
	s.echo = e

	return s
}

// Register registers the API routes on g.
func (s *Server) Register(g *echo.Group) {
	g.GET("/health", s.Health)
	g.GET("/bridges/:id", s.GetBridge)
	g.GET("/bridges/:id/average", s.GetAverage)
	g.GET("/bridges/:id/closest", s.GetClosest)
	g.GET("/highways/:highway/length", s.GetHighwayLength)
	g.GET("/search", s.Search)
	g.GET("/radius", s.Radius)
	g.GET("/below", s.Below)
	g.POST("/assign", s.Assign)
	g.POST("/inspections", s.RecordInspection)
	g.POST("/bridges/:id/rehab", s.RecordRehab)
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr), zap.Int("bridges", len(s.bridges)))
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		s.logger.Info("request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().Status),
			zap.Duration("took", time.Since(start)),
		)
		return nil
	}
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// Health reports liveness.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetBridge returns one bridge record.
func (s *Server) GetBridge(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid bridge ID")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b := bridge.Get(s.bridges, id)
	if b == nil {
		return errorJSON(c, http.StatusNotFound, "Bridge not found")
	}
	return c.JSON(http.StatusOK, b)
}

// GetAverage returns the average condition of one bridge.
func (s *Server) GetAverage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid bridge ID")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if bridge.Get(s.bridges, id) == nil {
		return errorJSON(c, http.StatusNotFound, "Bridge not found")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":      id,
		"average": bridge.AverageCondition(s.bridges, id),
	})
}

// GetClosest returns the id of the nearest other bridge.
func (s *Server) GetClosest(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid bridge ID")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	closest := bridge.Closest(s.bridges, id)
	if closest == bridge.NotFound {
		return errorJSON(c, http.StatusNotFound, "No closest bridge")
	}
	return c.JSON(http.StatusOK, map[string]int{"id": id, "closest": closest})
}

// GetHighwayLength returns the total bridge length on a highway.
func (s *Server) GetHighwayLength(c echo.Context) error {
	highway := c.Param("highway")

	s.mu.RLock()
	defer s.mu.RUnlock()

	return c.JSON(http.StatusOK, map[string]any{
		"highway": highway,
		"length":  bridge.TotalLengthOnHighway(s.bridges, highway),
	})
}

// Search returns the ids of bridges with a field containing q.
func (s *Server) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return errorJSON(c, http.StatusBadRequest, "Missing query")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return c.JSON(http.StatusOK, map[string][]int{"ids": bridge.Containing(s.bridges, q)})
}

// Radius returns the ids of bridges within km of a point.
func (s *Server) Radius(c echo.Context) error {
	lat, err1 := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.QueryParam("lon"), 64)
	km, err3 := strconv.ParseFloat(c.QueryParam("km"), 64)
	if err1 != nil || err2 != nil || err3 != nil || km < 0 {
		return errorJSON(c, http.StatusBadRequest, "Invalid lat, lon or km")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return c.JSON(http.StatusOK, map[string][]int{"ids": bridge.InRadius(s.bridges, lat, lon, km)})
}

// Below returns the ids among ids whose current BCI is at most bci.
func (s *Server) Below(c echo.Context) error {
	threshold, err := strconv.ParseFloat(c.QueryParam("bci"), 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid bci")
	}
	ids, err := parseIDs(c.QueryParam("ids"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid ids")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return c.JSON(http.StatusOK, map[string][]int{"ids": bridge.ConditionBelow(s.bridges, ids, threshold)})
}

type assignRequest struct {
	Inspectors [][2]float64 `json:"inspectors"`
	Max        int          `json:"max"`
}

// Assign runs the inspector assignment over the collection.
func (s *Server) Assign(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	inspectors := make([]types.Inspector, len(req.Inspectors))
	for i, p := range req.Inspectors {
		inspectors[i] = types.Inspector{Latitude: p[0], Longitude: p[1]}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return c.JSON(http.StatusOK, map[string][][]int{
		"assignments": bridge.AssignInspectors(s.bridges, inspectors, req.Max),
	})
}

type inspectionRequest struct {
	IDs  []int   `json:"ids"`
	Date string  `json:"date"`
	BCI  float64 `json:"bci"`
}

// RecordInspection applies an inspection to the listed bridges. The
// recorder, when set, is written first so a storage failure leaves the
// collection untouched.
func (s *Server) RecordInspection(c echo.Context) error {
	var req inspectionRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if !validDate(req.Date) {
		return errorJSON(c, http.StatusBadRequest, "Invalid date, want MM/DD/YYYY")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recorder != nil {
		if _, err := s.recorder.RecordInspection(c.Request().Context(), req.IDs, req.Date, req.BCI); err != nil {
			s.logger.Error("failed to record inspection", zap.Error(err))
			return errorJSON(c, http.StatusInternalServerError, "Failed to record inspection")
		}
	}

	n := bridge.RecordInspection(s.bridges, req.IDs, req.Date, req.BCI)
	return c.JSON(http.StatusOK, map[string]int{"updated": n})
}

type rehabRequest struct {
	Date  string `json:"date"`
	Major bool   `json:"major"`
}

// RecordRehab records a major or minor rehabilitation of one bridge. Like
// RecordInspection, the recorder is written before the collection.
func (s *Server) RecordRehab(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid bridge ID")
	}
	var req rehabRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if !validDate(req.Date) {
		return errorJSON(c, http.StatusBadRequest, "Invalid date, want MM/DD/YYYY")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if bridge.Get(s.bridges, id) == nil {
		return errorJSON(c, http.StatusNotFound, "Bridge not found")
	}
	if s.recorder != nil {
		if _, err := s.recorder.RecordRehab(c.Request().Context(), id, req.Date, req.Major); err != nil {
			s.logger.Error("failed to record rehab", zap.Int("id", id), zap.Error(err))
			return errorJSON(c, http.StatusInternalServerError, "Failed to record rehab")
		}
	}

	bridge.RecordRehab(s.bridges, id, req.Date, req.Major)
	return c.JSON(http.StatusOK, bridge.Get(s.bridges, id))
}

func validDate(date string) bool {
	_, err := time.Parse("01/02/2006", date)
	return err == nil
}

func parseIDs(s string) ([]int, error) {
	ids := []int{}
	if s == "" {
		return ids, nil
	}
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
