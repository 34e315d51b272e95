package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
)

func (s *Server) ListTariffs(c *gin.Context) {
	tiers, err := s.tariffSvc.List(c.Request.Context())
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, tiers, "tariffs listed")
}

func (s *Server) CreateTariff(c *gin.Context) {
	var req tariffdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.tariffSvc.Create(c.Request.Context(), req)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondCreated(c, resp, "tariff created")
}

func (s *Server) GetTariffByOrdinal(c *gin.Context) {
	ordinal, err := strconv.Atoi(c.Param("ordinal"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid ordinal")
		return
	}

	resp, err := s.tariffSvc.GetByOrdinal(c.Request.Context(), ordinal)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, resp, "tariff found")
}

func (s *Server) UpdateTariff(c *gin.Context) {
	ordinal, err := strconv.Atoi(c.Param("ordinal"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid ordinal")
		return
	}

	var req tariffdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Ordinal = ordinal

	resp, err := s.tariffSvc.Update(c.Request.Context(), req)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, resp, "tariff updated")
}
