package server

import (
	"net/http"
	"strings"

	customerdomain "github.com/founderspc/somanager/internal/customer/domain"
	"github.com/gin-gonic/gin"
)

type createCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		Name:  strings.TrimSpace(req.Name),
		Phone: strings.TrimSpace(req.Phone),
		Email: strings.TrimSpace(req.Email),
		Notes: strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCustomerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Update(c.Request.Context(), customerdomain.UpdateCustomerRequest{
		ID:    strings.TrimSpace(c.Param("id")),
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	if err := s.customerSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListCustomers(c *gin.Context) {
	resp, err := s.customerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createPaymentProfileRequest struct {
	Method           string `json:"method"`
	ACHRouting       string `json:"ach_routing"`
	ACHAccount       string `json:"ach_account"`
	CardBrand        string `json:"card_brand"`
	CardLast4        string `json:"card_last4"`
	CardName         string `json:"card_name"`
	CardExpMonth     int    `json:"card_exp_month"`
	CardExpYear      int    `json:"card_exp_year"`
	BillStreet       string `json:"bill_street"`
	BillCityStateZip string `json:"bill_city_state_zip"`
}

func (s *Server) CreatePaymentProfile(c *gin.Context) {
	var req createPaymentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.CreatePaymentProfile(c.Request.Context(), customerdomain.CreatePaymentProfileRequest{
		CustomerID:       strings.TrimSpace(c.Param("id")),
		Method:           strings.TrimSpace(req.Method),
		ACHRouting:       strings.TrimSpace(req.ACHRouting),
		ACHAccount:       strings.TrimSpace(req.ACHAccount),
		CardBrand:        strings.TrimSpace(req.CardBrand),
		CardLast4:        strings.TrimSpace(req.CardLast4),
		CardName:         strings.TrimSpace(req.CardName),
		CardExpMonth:     req.CardExpMonth,
		CardExpYear:      req.CardExpYear,
		BillStreet:       strings.TrimSpace(req.BillStreet),
		BillCityStateZip: strings.TrimSpace(req.BillCityStateZip),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPaymentProfiles(c *gin.Context) {
	resp, err := s.customerSvc.ListPaymentProfiles(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetDefaultPaymentProfile(c *gin.Context) {
	err := s.customerSvc.SetDefaultPaymentProfile(
		c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		strings.TrimSpace(c.Param("profileId")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"default_set": true}})
}

func isCustomerValidationError(err error) bool {
	switch err {
	case customerdomain.ErrInvalidName,
		customerdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
