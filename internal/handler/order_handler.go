package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dhruv6019/BrivaMart/internal/middleware"
	"github.com/Dhruv6019/BrivaMart/internal/service"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

// OrderHandler handles order history endpoints.
type OrderHandler struct {
	cartService *service.CartService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(cartService *service.CartService) *OrderHandler {
	return &OrderHandler{cartService: cartService}
}

// ListOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.cartService.ListOrders(middleware.UserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Orders retrieved", gin.H{"orders": orders})
}

// GetOrder returns one of the caller's orders by id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.cartService.GetOrder(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Order retrieved", gin.H{"order": order})
}
