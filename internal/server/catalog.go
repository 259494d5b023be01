package server

import (
	"net/http"
	"strings"

	catalogdomain "github.com/founderspc/somanager/internal/catalog/domain"
	"github.com/gin-gonic/gin"
)

type createCatalogEntryRequest struct {
	Name              string `json:"name"`
	DefaultPriceCents int64  `json:"default_price_cents"`
	Description       string `json:"description"`
}

func (s *Server) CreateCatalogEntry(c *gin.Context) {
	var req createCatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.Create(c.Request.Context(), catalogdomain.CreateEntryRequest{
		Name:              strings.TrimSpace(req.Name),
		DefaultPriceCents: req.DefaultPriceCents,
		Description:       strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCatalogEntryRequest struct {
	Name              *string `json:"name"`
	DefaultPriceCents *int64  `json:"default_price_cents"`
	Description       *string `json:"description"`
	Active            *bool   `json:"active"`
}

func (s *Server) UpdateCatalogEntry(c *gin.Context) {
	var req updateCatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.Update(c.Request.Context(), catalogdomain.UpdateEntryRequest{
		ID:                strings.TrimSpace(c.Param("id")),
		Name:              req.Name,
		DefaultPriceCents: req.DefaultPriceCents,
		Description:       req.Description,
		Active:            req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateCatalogEntry(c *gin.Context) {
	if err := s.catalogSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deactivated": true}})
}

func (s *Server) ListCatalogEntries(c *gin.Context) {
	var query struct {
		IncludeInactive bool `form:"include_inactive"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.List(c.Request.Context(), catalogdomain.ListEntriesRequest{
		IncludeInactive: query.IncludeInactive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCatalogEntryByID(c *gin.Context) {
	resp, err := s.catalogSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCatalogValidationError(err error) bool {
	switch err {
	case catalogdomain.ErrInvalidName,
		catalogdomain.ErrInvalidPrice,
		catalogdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
