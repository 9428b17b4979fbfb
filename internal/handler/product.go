package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/carcare-storefront/internal/catalog"
	"github.com/flicky/carcare-storefront/internal/dto"
)

// ProductHandler serves the compiled-in catalog.
type ProductHandler struct{}

func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

func (h *ProductHandler) List(c *gin.Context) {
	products := catalog.All()
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	respond(c, http.StatusOK, out)
}

// Get accepts a full id, a short id or a slug.
func (h *ProductHandler) Get(c *gin.Context) {
	p, ok := catalog.Lookup(c.Param("ref"))
	if !ok {
		fail(c, http.StatusNotFound, "product not found")
		return
	}
	respond(c, http.StatusOK, toProductResponse(p))
}
