package orders

import (
	"net/http"
	"strconv"

	"codeberg.org/wcorrea/apierror/api/rest/middleware"
	"codeberg.org/wcorrea/apierror/api/rest/pagination"
	"codeberg.org/wcorrea/apierror/internal/errors"
	"codeberg.org/wcorrea/apierror/library/orders"
	"github.com/gin-gonic/gin"
)

// CreateOrder godoc
// @Summary Place an order
// @Description Creates an open order; the reference must be unique
// @Tags orders
// @Accept json
// @Produce json
// @Param request body orders.CreateOrderRequest true "Order data"
// @Success 201 {object} orders.Order
// @Failure 400 {array} apierror.Body
// @Failure 409 {array} apierror.Body
// @Failure 500 {array} apierror.Body
// @Router /api/v1/orders [post]
func CreateOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orders.CreateOrderRequest
		if err := middleware.BindJSON(c, &req); err != nil {
			c.Error(err) //nolint:errcheck // rendered by the error middleware
			return
		}

		order, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			c.Error(err) //nolint:errcheck // rendered by the error middleware
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

// ListOrders godoc
// @Summary List orders
// @Description Returns the most recent orders
// @Tags orders
// @Produce json
// @Param limit query int false "Maximum number of orders" default(20)
// @Param offset query int false "Number of orders to skip" default(0)
// @Success 200 {object} ListResponse
// @Failure 400 {array} apierror.Body
// @Failure 500 {array} apierror.Body
// @Router /api/v1/orders [get]
func ListOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := pagination.FromQuery(c, defaultListLimit, maxListLimit)
		if err != nil {
			c.Error(err) //nolint:errcheck // rendered by the error middleware
			return
		}

		list, total, err := svc.List(c.Request.Context(), params.Limit, params.Offset)
		if err != nil {
			c.Error(err) //nolint:errcheck // rendered by the error middleware
			return
		}

		c.JSON(http.StatusOK, ListResponse{
			Orders:     list,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} orders.Order
// @Failure 400 {array} apierror.Body
// @Failure 404 {array} apierror.Body
// @Failure 500 {array} apierror.Body
// @Router /api/v1/orders/{id} [get]
func GetOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := orderID(c)
		if err != nil {
			c.Error(err) //nolint:errcheck // rendered by the error middleware
			return
		}

		order, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			c.Error(err) //nolint:errcheck // rendered by the error middleware
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// CloseOrder godoc
// @Summary Close an order
// @Description Closes an open order; closing twice is rejected with ORDER_CLOSED
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} orders.Order
// @Failure 400 {array} apierror.Body
// @Failure 404 {array} apierror.Body
// @Failure 500 {array} apierror.Body
// @Router /api/v1/orders/{id}/close [post]
func CloseOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := orderID(c)
		if err != nil {
			c.Error(err) //nolint:errcheck // rendered by the error middleware
			return
		}

		order, err := svc.Close(c.Request.Context(), id)
		if err != nil {
			c.Error(err) //nolint:errcheck // rendered by the error middleware
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// DeleteOrder godoc
// @Summary Delete an order
// @Description Deletes an order that has not been closed
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {array} apierror.Body
// @Failure 404 {array} apierror.Body
// @Failure 500 {array} apierror.Body
// @Router /api/v1/orders/{id} [delete]
func DeleteOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := orderID(c)
		if err != nil {
			c.Error(err) //nolint:errcheck // rendered by the error middleware
			return
		}

		if err := svc.Delete(c.Request.Context(), id); err != nil {
			c.Error(err) //nolint:errcheck // rendered by the error middleware
			return
		}

		c.JSON(http.StatusOK, DeleteResponse{Message: "order deleted"})
	}
}

// parses the :id path parameter
func orderID(c *gin.Context) (int64, error) {
	raw := c.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.TypeMismatch("id", raw, "int64", err)
	}

	return id, nil
}
