package server

import (
	"net/http"
	"strings"
	"time"

	invoicedomain "github.com/founderspc/somanager/internal/invoice/domain"
	"github.com/founderspc/somanager/internal/invoice/format"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetOrderInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetForOrder(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SeedOrderInvoice(c *gin.Context) {
	today, err := parseOptionalDate(c.Query("today"))
	if err != nil {
		AbortWithError(c, newValidationError("today", "invalid_today", "invalid today"))
		return
	}

	var anchor time.Time
	if today != nil {
		anchor = *today
	}
	resp, err := s.invoiceSvc.Seed(c.Request.Context(), invoicedomain.SeedRequest{
		OrderID: strings.TrimSpace(c.Param("id")),
		Today:   anchor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"seed":             resp,
		"subtotal_display": format.USD(resp.SubtotalCents),
	}})
}

type createOrderInvoiceRequest struct {
	TermsDays int    `json:"terms_days"`
	TaxCents  int64  `json:"tax_cents"`
	Today     string `json:"today"`
}

func (s *Server) CreateOrderInvoice(c *gin.Context) {
	req := createOrderInvoiceRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	today, err := parseOptionalDate(req.Today)
	if err != nil {
		AbortWithError(c, newValidationError("today", "invalid_today", "invalid today"))
		return
	}

	var anchor time.Time
	if today != nil {
		anchor = *today
	}
	orderID := strings.TrimSpace(c.Param("id"))
	seed, err := s.invoiceSvc.Seed(c.Request.Context(), invoicedomain.SeedRequest{
		OrderID:   orderID,
		TermsDays: req.TermsDays,
		Today:     anchor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.CreateFromSeed(c.Request.Context(), invoicedomain.CreateFromSeedRequest{
		OrderID:  orderID,
		Seed:     seed,
		TaxCents: req.TaxCents,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkOrderInvoicePaid(c *gin.Context) {
	resp, err := s.invoiceSvc.MarkPaid(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
