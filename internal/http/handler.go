// Package http exposes the parcel service over gin.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/parcel-service/internal/domain/dto"
	"github.com/guttosm/parcel-service/internal/domain/model"
	"github.com/guttosm/parcel-service/internal/i18n"
	"github.com/guttosm/parcel-service/internal/middleware"
	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/guttosm/parcel-service/internal/repository"
	"github.com/guttosm/parcel-service/internal/service"
)

// Handler serves the packing and catalog endpoints.
type Handler struct {
	calculator service.ParcelCalculator
	containers service.ContainerService
	catalog    service.CatalogService
	cart       *service.CartService
	audit      *middleware.AsyncLogger
	maxItems   int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAuditLogger records packing actions through al.
func WithAuditLogger(al *middleware.AsyncLogger) HandlerOption {
	return func(h *Handler) {
		h.audit = al
	}
}

// WithMaxItems rejects requests expanding to more than n items before
// they are expanded; zero means no cap.
func WithMaxItems(n int) HandlerOption {
	return func(h *Handler) {
		h.maxItems = n
	}
}

// NewHandler creates a Handler. catalog may be nil when no product catalog
// is configured; the cart and product endpoints then answer 503.
func NewHandler(calculator service.ParcelCalculator, containers service.ContainerService, catalog service.CatalogService, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator: calculator,
		containers: containers,
		catalog:    catalog,
	}
	if catalog != nil {
		h.cart = service.NewCartService(catalog, containers, calculator)
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Pack handles POST /api/pack.
//
// @Summary      Pack items into the smallest parcel
// @Description  Packs manually entered items. Without containers in the body the carrier derived hypotheses are used. A fallback outcome carries the stacked estimate and no placements.
// @Tags         Packing
// @Accept       json
// @Produce      json
// @Param        request body dto.PackRequest true "Items and optional container overrides"
// @Success      200 {object} dto.SuccessResponse{data=packing.Result}
// @Failure      400 {object} dto.ErrorResponse "Invalid items or too many items"
// @Failure      401 {object} dto.ErrorResponse
// @Failure      429 {object} dto.ErrorResponse
// @Failure      504 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/pack [post]
func (h *Handler) Pack(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.PackRequest](c)
	if err == nil {
		err = dto.CheckUnits(req.Units(), h.maxItems)
	}
	if err != nil {
		h.fail(c, builder, model.ActionPack, err)
		return
	}

	items := req.PackingItems()
	containers := req.PackingContainers()
	source := "request"
	if containers == nil {
		containers, source = h.containers.Containers(c.Request.Context())
	}

	res, err := h.calculator.Pack(c.Request.Context(), items, containers)
	if err != nil {
		h.fail(c, builder, model.ActionPack, err)
		return
	}

	h.record(c, model.ActionPack, res, map[string]interface{}{
		"items":             len(items),
		"container_source":  source,
		"size_sum_cm":       res.Dimensions.SizeSum(),
		"container_matched": res.Container,
	})
	builder.SuccessOK(res)
}

// Fit handles POST /api/pack/fit.
//
// @Summary      Check whether items fit a container
// @Description  Packs the items inside the given envelope only. When they do not fit, fits is false and the result is the stacked estimate.
// @Tags         Packing
// @Accept       json
// @Produce      json
// @Param        request body dto.FitRequest true "Items and the target container"
// @Success      200 {object} dto.SuccessResponse{data=dto.FitResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      504 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/pack/fit [post]
func (h *Handler) Fit(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.FitRequest](c)
	if err == nil {
		err = dto.CheckUnits(req.Units(), h.maxItems)
	}
	if err != nil {
		h.fail(c, builder, model.ActionFit, err)
		return
	}

	container := req.Container.Container()
	items := req.PackingItems()
	res, fits, err := h.calculator.Fit(c.Request.Context(), items, container)
	if err != nil {
		h.fail(c, builder, model.ActionFit, err)
		return
	}

	h.record(c, model.ActionFit, res, map[string]interface{}{
		"items":     len(items),
		"container": container.Name,
		"fits":      fits,
	})
	builder.SuccessOK(dto.FitResponse{Fits: fits, Container: container.Name, Result: res})
}

// PackCart handles POST /api/pack/cart.
//
// @Summary      Pack a cart of catalog products
// @Description  Resolves product IDs against the catalog, expands quantities into units and packs them.
// @Tags         Packing
// @Accept       json
// @Produce      json
// @Param        request body dto.CartRequest true "Cart lines"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse}
// @Failure      400 {object} dto.ErrorResponse "Unknown product IDs are listed in details.product_ids"
// @Failure      401 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse "Product catalog unavailable"
// @Failure      504 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/pack/cart [post]
func (h *Handler) PackCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.cart == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, nil)
		return
	}

	req, err := BuildRequestAndValidate[dto.CartRequest](c)
	if err == nil {
		err = dto.CheckUnits(req.Units(), h.maxItems)
	}
	if err != nil {
		h.fail(c, builder, model.ActionCart, err)
		return
	}

	res, items, err := h.cart.PackCart(c.Request.Context(), req.Items)
	if err != nil {
		h.fail(c, builder, model.ActionCart, err)
		return
	}

	h.record(c, model.ActionCart, res, map[string]interface{}{
		"lines": len(req.Items),
		"items": len(items),
	})
	builder.SuccessOK(dto.CartResponse{Result: res, Items: items})
}

// Products handles GET /api/products.
//
// @Summary      List catalog products
// @Tags         Catalog
// @Produce      json
// @Param        category query string false "Category filter, case insensitive"
// @Success      200 {object} dto.SuccessResponse{data=dto.ProductsResponse}
// @Failure      503 {object} dto.ErrorResponse
// @Router       /api/products [get]
func (h *Handler) Products(c *gin.Context) {
	builder := NewResponseBuilder(c)
	if h.catalog == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, nil)
		return
	}

	products, err := h.catalog.Products(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		h.fail(c, builder, "", err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	builder.SuccessOK(dto.ProductsResponse{Products: products, Count: len(products)})
}

// Categories handles GET /api/products/categories.
//
// @Summary      List product categories
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CategoriesResponse}
// @Failure      503 {object} dto.ErrorResponse
// @Router       /api/products/categories [get]
func (h *Handler) Categories(c *gin.Context) {
	builder := NewResponseBuilder(c)
	if h.catalog == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, nil)
		return
	}

	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, builder, "", err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	builder.SuccessOK(dto.CategoriesResponse{Categories: categories})
}

// Containers handles GET /api/containers.
//
// @Summary      List container hypotheses
// @Description  Carrier derived envelopes merged with the configured defaults, smallest first.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.ContainersResponse}
// @Router       /api/containers [get]
func (h *Handler) Containers(c *gin.Context) {
	containers, source := h.containers.Containers(c.Request.Context())
	NewResponseBuilder(c).SuccessOK(dto.ContainersResponse{Containers: containers, Source: source})
}

// record writes the audit entry for a finished packing request.
func (h *Handler) record(c *gin.Context, action string, res packing.Result, fields map[string]interface{}) {
	if res.Outcome == packing.OutcomeFallback {
		action = model.ActionFallback
	}
	fields["outcome"] = string(res.Outcome)
	fields["strategy"] = res.Strategy
	middleware.AuditLog(h.audit, c, action, "packing finished", fields)
}

// fail maps service errors to responses.
func (h *Handler) fail(c *gin.Context, b *ResponseBuilder, action string, err error) {
	if action != "" {
		middleware.AuditLogError(h.audit, c, action, "packing rejected", err, nil)
	}

	var (
		bindErr     *BindError
		validation  *dto.ValidationError
		unknown     *service.UnknownProductsError
		tooManyItem *service.TooManyItemsError
	)
	switch {
	case errors.As(err, &bindErr):
		b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
	case errors.As(err, &validation):
		b.ErrorWithDetails(http.StatusBadRequest, validationKey(validation), err,
			map[string]string{"field": validation.Field, "reason": validation.Message})
	case errors.As(err, &unknown):
		ids := joinIDs(unknown.IDs)
		b.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyUnknownProducts, err,
			map[string]string{"product_ids": ids}, ids)
	case errors.As(err, &tooManyItem):
		b.Error(http.StatusBadRequest, i18n.ErrKeyTooManyItems, err, tooManyItem.Limit)
	case errors.Is(err, repository.ErrCatalogUnavailable):
		b.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		b.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	default:
		b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

func validationKey(v *dto.ValidationError) string {
	switch v {
	case dto.ErrNoItems:
		return i18n.ErrKeyValidationItems
	case dto.ErrNoCartLines:
		return i18n.ErrKeyValidationCart
	case dto.ErrInvalidContainer:
		return i18n.ErrKeyValidationContainer
	default:
		return i18n.ErrKeyInvalidRequest
	}
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
