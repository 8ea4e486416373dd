package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ksrlabs/resource-booking/internal/models"
)

type ResourceHandler struct {
	db *gorm.DB
}

func NewResourceHandler(db *gorm.DB) *ResourceHandler {
	return &ResourceHandler{db: db}
}

// --------- Requests ---------

type CreateResourceRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Status   string `json:"status"`
}

type UpdateResourceRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// --------- Handlers ---------

func (h *ResourceHandler) List(c *gin.Context) {
	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
	resType := strings.ToLower(strings.TrimSpace(c.Query("type")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("deleted = false")

	if status != "" {
		q = q.Where("status = ?", status)
	}

	if resType != "" {
		q = q.Where("LOWER(type) = ?", resType)
	}

	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var resources []models.Resource
	if err := q.
		Order("id ASC").
		Find(&resources).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_resources"})
		return
	}

	c.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var resource models.Resource
	if err := h.db.First(&resource, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource_not_found"})
		return
	}

	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	status := models.ResourceAvailable
	if req.Status != "" {
		status = models.ResourceStatus(strings.ToUpper(req.Status))
		if !validResourceStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
			return
		}
	}

	resource := models.Resource{
		Name:     req.Name,
		Type:     req.Type,
		Capacity: req.Capacity,
		Status:   status,
	}

	if err := h.db.Create(&resource).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_resource"})
		return
	}

	c.JSON(http.StatusCreated, resource)
}

func (h *ResourceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var resource models.Resource
	if err := h.db.First(&resource, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource_not_found"})
		return
	}

	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		resource.Name = *req.Name
	}
	if req.Type != nil {
		resource.Type = *req.Type
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_capacity"})
			return
		}
		resource.Capacity = *req.Capacity
	}
	if req.Status != nil {
		status := models.ResourceStatus(strings.ToUpper(*req.Status))
		if !validResourceStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
			return
		}
		resource.Status = status
	}

	if err := h.db.Save(&resource).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_resource"})
		return
	}

	c.JSON(http.StatusOK, resource)
}

// Delete is a soft delete; existing bookings keep their reference.
func (h *ResourceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var resource models.Resource
	if err := h.db.First(&resource, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource_not_found"})
		return
	}

	now := time.Now()
	resource.Deleted = true
	resource.DeletedAt = &now

	if err := h.db.Save(&resource).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_resource"})
		return
	}

	c.Status(http.StatusNoContent)
}

func validResourceStatus(s models.ResourceStatus) bool {
	switch s {
	case models.ResourceAvailable, models.ResourceUnavailable, models.ResourceMaintenance:
		return true
	}
	return false
}
