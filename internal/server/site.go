package server

import (
	"net/http"
	"strings"
	"time"

	sitedomain "github.com/founderspc/somanager/internal/site/domain"
	"github.com/gin-gonic/gin"
)

type createSiteRequest struct {
	CustomerID   string   `json:"customer_id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	POCName      string   `json:"poc_name"`
	POCPhone     string   `json:"poc_phone"`
	POCEmail     string   `json:"poc_email"`
	ScopeOfWork  string   `json:"scope_of_work"`
	AreaZone     string   `json:"area_zone"`
	CadenceCode  string   `json:"cadence_code"`
	Notes        string   `json:"notes"`
	ServiceNames []string `json:"service_names"`
}

func (s *Server) CreateSite(c *gin.Context) {
	var req createSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.siteSvc.Create(c.Request.Context(), sitedomain.CreateSiteRequest{
		CustomerID:   strings.TrimSpace(req.CustomerID),
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		POCName:      strings.TrimSpace(req.POCName),
		POCPhone:     strings.TrimSpace(req.POCPhone),
		POCEmail:     strings.TrimSpace(req.POCEmail),
		ScopeOfWork:  strings.TrimSpace(req.ScopeOfWork),
		AreaZone:     strings.TrimSpace(req.AreaZone),
		CadenceCode:  strings.TrimSpace(req.CadenceCode),
		Notes:        strings.TrimSpace(req.Notes),
		ServiceNames: req.ServiceNames,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateSiteRequest struct {
	Name         *string  `json:"name"`
	Address      *string  `json:"address"`
	POCName      *string  `json:"poc_name"`
	POCPhone     *string  `json:"poc_phone"`
	POCEmail     *string  `json:"poc_email"`
	ScopeOfWork  *string  `json:"scope_of_work"`
	AreaZone     *string  `json:"area_zone"`
	CadenceCode  *string  `json:"cadence_code"`
	Notes        *string  `json:"notes"`
	ServiceNames []string `json:"service_names"`
}

func (s *Server) UpdateSite(c *gin.Context) {
	var req updateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.siteSvc.Update(c.Request.Context(), sitedomain.UpdateSiteRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		Name:         req.Name,
		Address:      req.Address,
		POCName:      req.POCName,
		POCPhone:     req.POCPhone,
		POCEmail:     req.POCEmail,
		ScopeOfWork:  req.ScopeOfWork,
		AreaZone:     req.AreaZone,
		CadenceCode:  req.CadenceCode,
		Notes:        req.Notes,
		ServiceNames: req.ServiceNames,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSite(c *gin.Context) {
	if err := s.siteSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) GetSiteByID(c *gin.Context) {
	resp, err := s.siteSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCustomerSites(c *gin.Context) {
	resp, err := s.siteSvc.ListForCustomer(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSiteNextDue(c *gin.Context) {
	today, err := parseOptionalDate(c.Query("today"))
	if err != nil {
		AbortWithError(c, newValidationError("today", "invalid_today", "invalid today"))
		return
	}

	var anchor time.Time
	if today != nil {
		anchor = *today
	}
	due, err := s.siteSvc.NextDue(c.Request.Context(), strings.TrimSpace(c.Param("id")), anchor)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"next_due": due.Format(dateLayout)}})
}

type addSiteServiceRequest struct {
	Name           string `json:"name"`
	CatalogID      string `json:"catalog_id"`
	UnitPriceCents *int64 `json:"unit_price_cents"`
}

func (s *Server) AddSiteService(c *gin.Context) {
	var req addSiteServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.siteSvc.AddService(c.Request.Context(), sitedomain.AddServiceRequest{
		SiteID:         strings.TrimSpace(c.Param("id")),
		Name:           strings.TrimSpace(req.Name),
		CatalogID:      strings.TrimSpace(req.CatalogID),
		UnitPriceCents: req.UnitPriceCents,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateSiteServiceRequest struct {
	Name           *string `json:"name"`
	UnitPriceCents *int64  `json:"unit_price_cents"`
	Active         *bool   `json:"active"`
}

func (s *Server) UpdateSiteService(c *gin.Context) {
	var req updateSiteServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.siteSvc.UpdateService(c.Request.Context(), sitedomain.UpdateServiceRequest{
		ServiceID:      strings.TrimSpace(c.Param("id")),
		Name:           req.Name,
		UnitPriceCents: req.UnitPriceCents,
		Active:         req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSiteServices(c *gin.Context) {
	resp, err := s.siteSvc.ListServices(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type reconcileServiceNamesRequest struct {
	ServiceNames []string `json:"service_names"`
}

func (s *Server) ReconcileSiteServiceNames(c *gin.Context) {
	var req reconcileServiceNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	siteID := strings.TrimSpace(c.Param("id"))
	if err := s.siteSvc.ReconcileServiceNames(c.Request.Context(), siteID, req.ServiceNames); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.siteSvc.ListServices(c.Request.Context(), siteID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isSiteValidationError(err error) bool {
	switch err {
	case sitedomain.ErrInvalidCustomer,
		sitedomain.ErrInvalidName,
		sitedomain.ErrInvalidPrice,
		sitedomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
