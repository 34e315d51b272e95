package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	purchasedomain "github.com/sunugrid/voltara/internal/purchase/domain"
)

func (s *Server) ProcessPurchase(c *gin.Context) {
	var req purchasedomain.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OriginIP = c.ClientIP()

	result, err := s.purchaseSvc.ProcessPurchase(c.Request.Context(), req)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}

	if result.Failed() {
		code, message := purchaseFailureStatus(*result.FailureReason)
		c.JSON(code, envelope{
			Data:    result,
			Code:    code,
			Status:  statusError,
			Message: message,
		})
		return
	}

	respondOK(c, result, "purchase completed")
}

func (s *Server) GetPurchaseByReference(c *gin.Context) {
	txn, err := s.purchaseSvc.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, txn, "purchase found")
}

func (s *Server) ListPurchases(c *gin.Context) {
	var req purchasedomain.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	page, err := s.purchaseSvc.History(c.Request.Context(), req)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	respondOK(c, page, "purchases listed")
}
