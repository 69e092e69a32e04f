// controller/product_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/service"
	"github.com/vapvarun/wc-subscription-protection/util"
	helper_util "github.com/vapvarun/wc-subscription-protection/util/helper"
)

type ProductController struct {
	productService service.IProductService
}

func NewProductController(productService service.IProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// RegisterRoutes registers the API routes
func (pc *ProductController) RegisterRoutes(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.GET("", pc.ListProducts)
		products.GET("/:id", pc.GetProduct)
		products.DELETE("/:id/cache", pc.InvalidateProduct)
	}
}

// ListProducts endpoint
func (pc *ProductController) ListProducts(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", gate_errors.ErrInvalidPagination)
		return
	}

	products, err := pc.productService.ListSubscriptionProducts(c)
	if err != nil {
		respondWithServiceError(c, err, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": helper_util.Paginate(products, limit, offset),
		"total":    len(products),
		"limit":    limit,
		"offset":   offset,
	})
}

// GetProduct endpoint
func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.productService.GetProduct(c, model.ProductID(c.Param("id")))
	if err != nil {
		respondWithServiceError(c, err, "Failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// InvalidateProduct endpoint
func (pc *ProductController) InvalidateProduct(c *gin.Context) {
	requester := util.GetRequesterFromContext(c)
	if err := pc.productService.InvalidateProduct(c, model.ProductID(c.Param("id")), requester); err != nil {
		respondWithServiceError(c, err, "Failed to invalidate product cache")
		return
	}
	c.Status(http.StatusNoContent)
}
