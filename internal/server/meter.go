package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	meterdomain "github.com/sunugrid/voltara/internal/meter/domain"
)

func (s *Server) CreateMeter(c *gin.Context) {
	var req meterdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.meterSvc.Create(c.Request.Context(), req)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondCreated(c, resp, "meter created")
}

func (s *Server) ListMeters(c *gin.Context) {
	meters, err := s.meterSvc.List(c.Request.Context())
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, meters, "meters listed")
}

func (s *Server) GetMeterByIdentifier(c *gin.Context) {
	resp, err := s.meterSvc.GetByIdentifier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, resp, "meter found")
}

func (s *Server) SetMeterStatus(c *gin.Context) {
	var body struct {
		Status meterdomain.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.meterSvc.SetStatus(c.Request.Context(), c.Param("identifier"), body.Status); err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"identifier": c.Param("identifier"), "status": body.Status}, "meter status updated")
}
