// internal/api/handlers.go
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tamzrod/rtk-status/internal/indicator"
	"github.com/tamzrod/rtk-status/internal/status"
)

// StatusResponse is the document served by GET /api/status.
type StatusResponse struct {
	Device      string          `json:"device"`
	Profile     string          `json:"profile"`
	Mode        string          `json:"mode"`
	Screen      string          `json:"screen"`
	Link        string          `json:"link"`
	Peripherals map[string]bool `json:"peripherals"`
	Survey      SurveyStatus    `json:"survey"`
	Lights      LightsStatus    `json:"lights"`
}

type SurveyStatus struct {
	Seconds   uint16   `json:"seconds"`
	Restarts  uint16   `json:"restarts"`
	AccuracyM *float64 `json:"accuracy_m,omitempty"`
}

type LightsStatus struct {
	Radio     string `json:"radio"`
	Base      string `json:"base"`
	BaseState string `json:"base_state"`
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type linkRequest struct {
	Link string `json:"link" binding:"required"`
}

type peripheralRequest struct {
	Peripheral string `json:"peripheral" binding:"required"`
	Online     bool   `json:"online"`
}

// getStatus returns the full status document
func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.statusDocument())
}

func (s *Server) statusDocument() StatusResponse {
	now := s.now()

	snap := s.dev.Snapshot()
	var acc float64
	var hasAcc bool
	if s.survey != nil {
		snap = s.survey.Snapshot(now)
		acc, hasAcc = s.survey.LastAccuracy()
	}

	lights := indicator.Evaluate(s.dev, acc, hasAcc, s.opts.FastBlinkAccuracy)

	peripherals := make(map[string]bool)
	for _, p := range status.AllPeripherals() {
		peripherals[p.String()] = snap.Peripherals&(1<<uint(p)) != 0
	}

	doc := StatusResponse{
		Device:      s.opts.DeviceName,
		Profile:     s.dev.Profile().String(),
		Mode:        snap.Mode.String(),
		Screen:      snap.Screen.String(),
		Link:        snap.Link.String(),
		Peripherals: peripherals,
		Survey: SurveyStatus{
			Seconds:  snap.SurveySeconds,
			Restarts: snap.SurveyRestarts,
		},
		Lights: LightsStatus{
			Radio:     lights.Radio.String(),
			Base:      lights.Base.String(),
			BaseState: lights.BaseState.String(),
		},
	}
	if hasAcc {
		doc.Survey.AccuracyM = &acc
	}
	return doc
}

// setMode requests an operating mode change
func (s *Server) setMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	m, err := status.ParseOperatingMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed, err := s.dev.TransitionTo(m)
	if err != nil {
		s.transitionError(c, err)
		return
	}
	if changed {
		s.log.Info("mode set", "mode", m)
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed, "mode": s.dev.Mode().String()})
}

// setLink overwrites the radio link state
func (s *Server) setLink(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	l, err := status.ParseLinkState(req.Link)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.dev.SetLinkState(l)
	if s.survey != nil {
		if err := s.survey.SyncLink(l); err != nil {
			s.log.Warn("link sync", "link", l, "err", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"link": l.String(), "mode": s.dev.Mode().String()})
}

// setPeripheral records whether a peripheral is online
func (s *Server) setPeripheral(c *gin.Context) {
	var req peripheralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p, err := status.ParsePeripheral(req.Peripheral)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.dev.SetAvailable(p, req.Online)
	c.JSON(http.StatusOK, gin.H{"peripheral": p.String(), "online": s.dev.IsAvailable(p)})
}

// baseFault puts the failure screen up while the device is a base
func (s *Server) baseFault(c *gin.Context) {
	if !s.dev.Mode().IsBase() {
		c.JSON(http.StatusConflict, gin.H{"error": "not in a base mode"})
		return
	}
	changed := s.dev.ReportBaseFault()
	if changed {
		s.log.Warn("base fault reported", "mode", s.dev.Mode())
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed, "screen": s.dev.Screen().String()})
}

// baseStart enters the base role
func (s *Server) baseStart(c *gin.Context) {
	if s.survey == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "base role unavailable"})
		return
	}
	if err := s.survey.Start(s.now()); err != nil {
		s.transitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": s.dev.Mode().String()})
}

// baseStop leaves the base role
func (s *Server) baseStop(c *gin.Context) {
	if s.survey == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "base role unavailable"})
		return
	}
	if err := s.survey.Stop(); err != nil {
		s.transitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": s.dev.Mode().String()})
}

func (s *Server) transitionError(c *gin.Context, err error) {
	if errors.Is(err, status.ErrTransitionNotAllowed) || errors.Is(err, status.ErrModeUnavailable) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "mode": s.dev.Mode().String()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
