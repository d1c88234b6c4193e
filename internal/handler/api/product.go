package api

import (
	"errors"
	"net/http"
	"time"

	"rentalhub/internal/domain/product"
	reqdto "rentalhub/internal/handler/dto/request"
	resdto "rentalhub/internal/handler/dto/response"
	"rentalhub/internal/handler/middleware"
	"rentalhub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productUseCase usecase.ProductUseCase
}

func NewProductHandler(productUseCase usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

// @Summary List products
// @Description List rentable products. Inactive products are hidden.
// @Tags products
// @Produce json
// @Success 200 {array} resdto.ProductListResponse
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productUseCase.ListProducts(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromProductListRMs(products))
}

// @Summary Get product
// @Description Get product details including pricing rules, seasonal rates and discounts
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	rm, err := h.productUseCase.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromProductRM(rm))
}

// @Summary Quote rental price
// @Description Preview the total price for a rental period without booking
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Param start query string true "Start date (RFC3339)"
// @Param end query string true "End date (RFC3339)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id}/quote [get]
func (h *ProductHandler) Quote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid start date, expected RFC3339",
		})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid end date, expected RFC3339",
		})
		return
	}

	quote, err := h.productUseCase.QuotePrice(c.Request.Context(), id, start, end)
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuote(quote))
}

// @Summary Create product
// @Description Register a new rentable product (admin only)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateProductRequest true "Product definition"
// @Success 201 {object} resdto.ProductResponse
// @Failure 400 {object} map[string]string
// @Router /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rm, err := h.productUseCase.CreateProduct(c.Request.Context(), usecase.CreateProductParams{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Rules:       req.DomainRules(),
		Seasons:     req.DomainSeasons(),
		Discounts:   req.DomainDiscounts(),
	})
	if err != nil {
		switch {
		case errors.Is(err, product.ErrEmptyName),
			errors.Is(err, product.ErrNegativePrice),
			errors.Is(err, product.ErrInvalidRule),
			errors.Is(err, product.ErrInvalidSeason),
			errors.Is(err, product.ErrInvalidDiscount),
			errors.Is(err, product.ErrInvalidDiscountType):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromProductRM(rm))
}
