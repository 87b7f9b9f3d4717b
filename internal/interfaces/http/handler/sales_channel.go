package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appchannel "github.com/commerce/backend/internal/application/channel"
)

// CreateSalesChannelRequest is the payload for creating a sales channel
type CreateSalesChannelRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"max=4096"`
	IsDisabled  bool   `json:"is_disabled"`
}

// UpdateSalesChannelRequest is the payload for partially updating a
// sales channel. Absent fields are left untouched.
type UpdateSalesChannelRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,max=255"`
	Description *string `json:"description" binding:"omitempty,max=4096"`
	IsDisabled  *bool   `json:"is_disabled"`
}

// ProductIDRef identifies one product in a batch request
type ProductIDRef struct {
	ID string `json:"id" binding:"required,uuid"`
}

// BatchProductsRequest is the payload for batch-attaching products.
// An absent or empty products_ids array is accepted; the attach then
// touches no rows and the response carries the unchanged channel.
type BatchProductsRequest struct {
	ProductIDs []ProductIDRef `json:"products_ids" binding:"omitempty,dive"`
}

// SalesChannelHandler serves the sales channel REST endpoints
type SalesChannelHandler struct {
	BaseHandler
	service *appchannel.SalesChannelService
}

// NewSalesChannelHandler creates a new sales channel handler
func NewSalesChannelHandler(service *appchannel.SalesChannelService) *SalesChannelHandler {
	return &SalesChannelHandler{service: service}
}

// Create handles POST /sales-channels
func (h *SalesChannelHandler) Create(c *gin.Context) {
	var req CreateSalesChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), appchannel.CreateSalesChannelRequest{
		Name:        req.Name,
		Description: req.Description,
		IsDisabled:  req.IsDisabled,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, resp)
}

// Retrieve handles GET /sales-channels/:id
func (h *SalesChannelHandler) Retrieve(c *gin.Context) {
	id, ok := h.channelID(c)
	if !ok {
		return
	}

	resp, err := h.service.Retrieve(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, http.StatusOK, resp)
}

// Update handles PUT /sales-channels/:id
func (h *SalesChannelHandler) Update(c *gin.Context) {
	id, ok := h.channelID(c)
	if !ok {
		return
	}

	var req UpdateSalesChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, appchannel.UpdateSalesChannelRequest{
		Name:        req.Name,
		Description: req.Description,
		IsDisabled:  req.IsDisabled,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, http.StatusOK, resp)
}

// Delete handles DELETE /sales-channels/:id. Deleting a channel that
// does not exist succeeds, so retried deletes are safe.
func (h *SalesChannelHandler) Delete(c *gin.Context) {
	id, ok := h.channelID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List handles GET /sales-channels
func (h *SalesChannelHandler) List(c *gin.Context) {
	_, _, err := h.service.ListAndCount(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, http.StatusOK, []interface{}{})
}

// AddProducts handles POST /sales-channels/:id/products/batch
func (h *SalesChannelHandler) AddProducts(c *gin.Context) {
	id, ok := h.channelID(c)
	if !ok {
		return
	}

	var req BatchProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productIDs := make([]uuid.UUID, len(req.ProductIDs))
	for i, ref := range req.ProductIDs {
		pid, err := uuid.Parse(ref.ID)
		if err != nil {
			h.BadRequest(c, "invalid product id: "+ref.ID)
			return
		}
		productIDs[i] = pid
	}

	resp, err := h.service.AddProducts(c.Request.Context(), id, productIDs)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, http.StatusOK, gin.H{"sales_channel": resp})
}

func (h *SalesChannelHandler) channelID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid sales channel id")
		return uuid.Nil, false
	}
	return id, true
}
