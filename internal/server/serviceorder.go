package server

import (
	"net/http"
	"strings"
	"time"

	serviceorderdomain "github.com/founderspc/somanager/internal/serviceorder/domain"
	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	SiteID        string   `json:"site_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ScheduledDate string   `json:"scheduled_date"`
	Notes         string   `json:"notes"`
	ServiceIDs    []string `json:"service_ids"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	scheduled, err := parseOptionalDate(req.ScheduledDate)
	if err != nil {
		AbortWithError(c, newValidationError("scheduled_date", "invalid_scheduled_date", "invalid scheduled_date"))
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), serviceorderdomain.CreateOrderRequest{
		SiteID:        strings.TrimSpace(req.SiteID),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		ScheduledDate: scheduled,
		Notes:         strings.TrimSpace(req.Notes),
		ServiceIDs:    req.ServiceIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateOrderRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	ScheduledDate *string  `json:"scheduled_date"`
	Completed     *bool    `json:"completed"`
	Invoiced      *bool    `json:"invoiced"`
	Notes         *string  `json:"notes"`
	ServiceIDs    []string `json:"service_ids"`
}

func (s *Server) UpdateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var scheduled *time.Time
	if req.ScheduledDate != nil {
		parsed, err := parseOptionalDate(*req.ScheduledDate)
		if err != nil {
			AbortWithError(c, newValidationError("scheduled_date", "invalid_scheduled_date", "invalid scheduled_date"))
			return
		}
		scheduled = parsed
	}

	resp, err := s.orderSvc.Update(c.Request.Context(), serviceorderdomain.UpdateOrderRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: scheduled,
		Completed:     req.Completed,
		Invoiced:      req.Invoiced,
		Notes:         req.Notes,
		ServiceIDs:    req.ServiceIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOrder(c *gin.Context) {
	if err := s.orderSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSiteOrders(c *gin.Context) {
	resp, err := s.orderSvc.ListForSite(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrdersDueInMonth(c *gin.Context) {
	var query struct {
		Year  int `form:"year"`
		Month int `form:"month"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.ListDueInMonth(c.Request.Context(), query.Year, query.Month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SeedOrderFromSite(c *gin.Context) {
	resp, err := s.orderSvc.SeedFromSite(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setLineItemsRequest struct {
	ServiceIDs []string `json:"service_ids"`
}

func (s *Server) SetOrderLineItems(c *gin.Context) {
	var req setLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.SetLineItems(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.ServiceIDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createNextOrderRequest struct {
	Today string `json:"today"`
}

func (s *Server) CreateNextOrder(c *gin.Context) {
	req := createNextOrderRequest{}
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
	resp, err := s.orderSvc.CreateNextForSite(c.Request.Context(), serviceorderdomain.CreateNextOrderRequest{
		SiteID: strings.TrimSpace(c.Param("id")),
		Today:  anchor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AssignEmployee(c *gin.Context) {
	resp, err := s.orderSvc.AssignEmployee(
		c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		strings.TrimSpace(c.Param("employeeId")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UnassignEmployee(c *gin.Context) {
	err := s.orderSvc.UnassignEmployee(
		c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		strings.TrimSpace(c.Param("employeeId")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"unassigned": true}})
}

func (s *Server) ListOrderAssignments(c *gin.Context) {
	resp, err := s.orderSvc.ListAssignments(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isOrderValidationError(err error) bool {
	switch err {
	case serviceorderdomain.ErrInvalidID,
		serviceorderdomain.ErrInvalidMonth:
		return true
	default:
		return false
	}
}
