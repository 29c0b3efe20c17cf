package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Dhruv6019/BrivaMart/internal/middleware"
	"github.com/Dhruv6019/BrivaMart/internal/models"
	"github.com/Dhruv6019/BrivaMart/internal/service"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

// ProductHandler handles catalog HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProducts returns the product list with optional filters.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filter := &models.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if v := c.Query("priceMin"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMin = &n
		}
	}
	if v := c.Query("priceMax"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMax = &n
		}
	}
	filter.InStock = boolQuery(c, "inStock")
	filter.Featured = boolQuery(c, "featured")
	filter.IsNew = boolQuery(c, "isNew")
	filter.OnSale = boolQuery(c, "onSale")

	products, err := h.productService.GetProducts(filter)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Products retrieved successfully", gin.H{
		"products": products,
	})
}

// GetProduct returns a single product by id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Param("id"))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product retrieved successfully", gin.H{
		"product": product,
	})
}

// SearchProducts queries the search index.
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	size := 20
	if v := c.Query("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			size = n
		}
	}

	products, err := h.productService.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Search completed", gin.H{
		"products": products,
	})
}

// CreateProduct inserts a catalog entry. Admin only.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Product created", gin.H{"product": product})
}

// UpdateProduct applies a partial update. Admin only.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req service.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), middleware.UserID(c), c.Param("id"), &req)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product updated", gin.H{"product": product})
}

// DeleteProduct removes a catalog entry. Admin only.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product deleted", nil)
}

func boolQuery(c *gin.Context, name string) *bool {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
