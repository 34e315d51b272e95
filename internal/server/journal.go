package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	journaldomain "github.com/sunugrid/voltara/internal/journal/domain"
)

func (s *Server) ListJournal(c *gin.Context) {
	var req journaldomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	page, err := s.journalSvc.List(c.Request.Context(), req)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, page, "journal listed")
}

func (s *Server) GetJournalStatistics(c *gin.Context) {
	var req journaldomain.StatsRequest
	for _, q := range []struct {
		name string
		dst  **time.Time
	}{
		{"from", &req.From},
		{"to", &req.To},
	} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid "+q.name+" timestamp, expected RFC3339")
			return
		}
		*q.dst = &t
	}

	stats, err := s.journalSvc.Statistics(c.Request.Context(), req)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, stats, "statistics computed")
}

func (s *Server) PurgeJournal(c *gin.Context) {
	removed, err := s.journalSvc.Purge(c.Request.Context())
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"removed": removed}, "journal purged")
}
