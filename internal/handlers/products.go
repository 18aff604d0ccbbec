package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ornamenta/storefront/internal/catalog"
	"github.com/ornamenta/storefront/internal/validation"
)

// registerProductRoutes wires the catalog. Reads are public; writes sit
// behind the admin group. The audience query parameter replaces the per
// collection endpoints the storefront used to expose.
func registerProductRoutes(api, admin *gin.RouterGroup, v *validatorv10.Validate, store *catalog.Store) {
	api.GET("/products", func(c *gin.Context) {
		ctx := c.Request.Context()

		audience := c.Query("audience")
		if audience != "" && !catalog.IsValidAudience(audience) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "invalid_audience",
				"validAudiences": catalog.Audiences,
			})
			return
		}

		var (
			products []catalog.Product
			err      error
		)
		if audience != "" {
			products, err = store.ListByAudience(ctx, audience)
		} else {
			products, err = store.List(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage_unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
	})

	api.GET("/products/:id", func(c *gin.Context) {
		product, err := store.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage_unavailable"})
			return
		}
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusOK, product)
	})

	admin.POST("/products", func(c *gin.Context) {
		var req validation.CreateProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		product := catalog.Product{
			ProductID:   uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Audience:    req.Audience,
			Category:    req.Category,
			Metal:       req.Metal,
			ImageURL:    req.Image,
			InStock:     req.InStock,
		}
		if err := store.Create(c.Request.Context(), &product); err != nil {
			if errors.Is(err, catalog.ErrDuplicateProduct) {
				c.JSON(http.StatusConflict, gin.H{"error": "duplicate_product"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product_creation_failed"})
			return
		}
		c.JSON(http.StatusCreated, product)
	})

	admin.DELETE("/products/:id", func(c *gin.Context) {
		if err := store.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product_delete_failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	})
}
