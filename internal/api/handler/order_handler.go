package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cymbol-superstore/marketplace-api/internal/api/metrics"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// OrderHandler serves order placement and order history.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Place handles POST /orders/place.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate orders"
// @Param        body             body      placeOrderRequest  true   "Order details"
// @Success      201              {object}  placeOrderResponse
// @Success      200              {object}  placeOrderResponse  "Replayed order"
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      406              {object}  errorResponse
// @Failure      409              {object}  errorResponse  "Same key still being placed"
// @Failure      422              {object}  errorResponse
// @Router       /orders/place [post]
func (h *OrderHandler) Place(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req placeOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	key := c.Request().Header.Get("Idempotency-Key")
	result, err := h.service.PlaceOrder(c.Request().Context(), id, toPlaceOrderInput(req, key))
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		metrics.OrdersPlacedTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, placeOrderResponse{Order: result.Order, Replayed: true})
	}
	metrics.OrdersPlacedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, placeOrderResponse{Order: result.Order})
}

// Get handles GET /orders/:id.
//
// @Summary      Get an order I am party to
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	orderID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	order, err := h.service.GetOrder(c.Request().Context(), id, orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// ListMine handles GET /customers/me/orders and GET /sellers/me/orders.
// start and end are inclusive calendar dates (YYYY-MM-DD) or RFC 3339
// timestamps.
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        start  query     string  false  "From date (YYYY-MM-DD)"
// @Param        end    query     string  false  "To date, inclusive (YYYY-MM-DD)"
// @Success      200    {array}   domain.Order
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /customers/me/orders [get]
// @Router       /sellers/me/orders [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var q orderRangeQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	query, err := toOrderQuery(q)
	if err != nil {
		return err
	}

	orders, err := h.service.ListMyOrders(c.Request().Context(), id, query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func toOrderQuery(q orderRangeQuery) (ports.OrderQuery, error) {
	var out ports.OrderQuery
	if q.Start != "" {
		from, _, err := parseDate(q.Start)
		if err != nil {
			return out, echo.NewHTTPError(http.StatusBadRequest, "start must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
		}
		out.From = from
	}
	if q.End != "" {
		to, dateOnly, err := parseDate(q.End)
		if err != nil {
			return out, echo.NewHTTPError(http.StatusBadRequest, "end must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
		}
		if dateOnly {
			to = to.AddDate(0, 0, 1)
		}
		out.To = to
	}
	if !out.From.IsZero() && !out.To.IsZero() && !out.From.Before(out.To) {
		return out, echo.NewHTTPError(http.StatusBadRequest, "start must be before end")
	}
	return out, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}
