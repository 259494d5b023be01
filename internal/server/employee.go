package server

import (
	"net/http"
	"strings"

	employeedomain "github.com/founderspc/somanager/internal/employee/domain"
	"github.com/gin-gonic/gin"
)

type createEmployeeRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (s *Server) CreateEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.employeeSvc.Create(c.Request.Context(), employeedomain.CreateEmployeeRequest{
		Name:  strings.TrimSpace(req.Name),
		Role:  strings.TrimSpace(req.Role),
		Phone: strings.TrimSpace(req.Phone),
		Email: strings.TrimSpace(req.Email),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateEmployeeRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	Active *bool   `json:"active"`
}

func (s *Server) UpdateEmployee(c *gin.Context) {
	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.employeeSvc.Update(c.Request.Context(), employeedomain.UpdateEmployeeRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		Name:   req.Name,
		Role:   req.Role,
		Phone:  req.Phone,
		Email:  req.Email,
		Active: req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteEmployee(c *gin.Context) {
	if err := s.employeeSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListEmployees(c *gin.Context) {
	var query struct {
		IncludeInactive bool `form:"include_inactive"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.employeeSvc.List(c.Request.Context(), employeedomain.ListEmployeesRequest{
		IncludeInactive: query.IncludeInactive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEmployeeByID(c *gin.Context) {
	resp, err := s.employeeSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isEmployeeValidationError(err error) bool {
	switch err {
	case employeedomain.ErrInvalidName,
		employeedomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
