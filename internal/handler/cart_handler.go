package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dhruv6019/BrivaMart/internal/middleware"
	"github.com/Dhruv6019/BrivaMart/internal/models"
	"github.com/Dhruv6019/BrivaMart/internal/service"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

// CartHandler handles cart, wishlist and checkout HTTP endpoints. All routes
// are authenticated; the cart in play always belongs to the caller.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart returns the caller's cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Cart retrieved", gin.H{"cart": cart})
}

// AddToCart merges a product selection into the cart.
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
		VariantID string `json:"variantId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.cartService.AddToCart(c.Request.Context(), middleware.UserID(c), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Item added to cart", gin.H{"cart": cart})
}

// UpdateCartItem sets an item's quantity; zero or below removes it.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cart, err := h.cartService.UpdateCartQuantity(c.Request.Context(), middleware.UserID(c), c.Param("itemId"), req.Quantity)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Cart updated", gin.H{"cart": cart})
}

// RemoveCartItem removes an item from the cart.
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	cart, err := h.cartService.RemoveFromCart(c.Request.Context(), middleware.UserID(c), c.Param("itemId"))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Item removed from cart", gin.H{"cart": cart})
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, err := h.cartService.ClearCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Cart cleared", gin.H{"cart": cart})
}

// GetWishlist returns the caller's wishlist.
func (h *CartHandler) GetWishlist(c *gin.Context) {
	items, err := h.cartService.GetWishlist(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Wishlist retrieved", gin.H{"wishlist": items})
}

// AddToWishlist records a product on the wishlist.
func (h *CartHandler) AddToWishlist(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	items, err := h.cartService.AddToWishlist(c.Request.Context(), middleware.UserID(c), req.ProductID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product added to wishlist", gin.H{"wishlist": items})
}

// RemoveFromWishlist drops a product from the wishlist.
func (h *CartHandler) RemoveFromWishlist(c *gin.Context) {
	items, err := h.cartService.RemoveFromWishlist(c.Request.Context(), middleware.UserID(c), c.Param("productId"))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product removed from wishlist", gin.H{"wishlist": items})
}

// ClearWishlist empties the caller's wishlist.
func (h *CartHandler) ClearWishlist(c *gin.Context) {
	if err := h.cartService.ClearWishlist(c.Request.Context(), middleware.UserID(c)); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Wishlist cleared", gin.H{"wishlist": []models.WishlistItem{}})
}

// Checkout snapshots the cart into an order.
func (h *CartHandler) Checkout(c *gin.Context) {
	var req struct {
		ShippingMethod models.ShippingMethod `json:"shippingMethod"`
		PaymentMethod  string                `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	order, err := h.cartService.Checkout(c.Request.Context(), middleware.UserID(c), c.ClientIP(), &service.CheckoutInput{
		ShippingMethod: req.ShippingMethod,
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Order placed", gin.H{"order": order})
}
