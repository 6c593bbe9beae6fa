package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lahorisamosa/lahorisamosa/internal/checkout"
	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/mailer"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

func registerCheckoutRoutes() {
	webserver.PubGET("/payment-methods", listPaymentMethods)
	webserver.PubPOST("/checkout", stageCheckout)
	webserver.PubGET("/checkout", getStagedCheckout)
	webserver.PubDELETE("/checkout", discardCheckout)
	webserver.PubPOST("/checkout/place", placeOrder)
}

func listPaymentMethods(c echo.Context) error {
	return ok(c, webserver.GetCheckout(c).Methods())
}

type stagePayload struct {
	CustomerInfo domain.CustomerInfo `json:"customer_info"`
}

func stageCheckout(c echo.Context) error {
	var payload stagePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout form", err.Error())
	}

	data, err := webserver.GetCheckout(c).Stage(webserver.SessionID(c), payload.CustomerInfo)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		// the client redirects to the cart view on this code
		return fail(c, http.StatusConflict, "CART_EMPTY", "Cart is empty", nil)
	case errors.Is(err, checkout.ErrInvalidCustomer):
		return fail(c, http.StatusBadRequest, "INVALID_CUSTOMER", "Name, phone, email and address are required", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "CHECKOUT_ERROR", "Failed to stage checkout", err.Error())
	}
	return ok(c, data)
}

func getStagedCheckout(c echo.Context) error {
	data, err := webserver.GetCheckout(c).Staged(webserver.SessionID(c))
	if errors.Is(err, checkout.ErrNoCheckout) {
		// the client redirects back to the checkout form on this code
		return fail(c, http.StatusNotFound, "NO_CHECKOUT", "No staged checkout data", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CHECKOUT_ERROR", "Failed to load checkout", err.Error())
	}
	return ok(c, data)
}

func discardCheckout(c echo.Context) error {
	if err := webserver.GetCheckout(c).Discard(webserver.SessionID(c)); err != nil {
		return fail(c, http.StatusInternalServerError, "CHECKOUT_ERROR", "Failed to discard checkout", err.Error())
	}
	return ok(c, nil)
}

type placePayload struct {
	PaymentMethod string `json:"payment_method"`
}

func placeOrder(c echo.Context) error {
	var payload placePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order request", err.Error())
	}
	if payload.PaymentMethod == "" {
		return fail(c, http.StatusBadRequest, "PAYMENT_REQUIRED", "A payment method must be selected", nil)
	}

	order, err := webserver.GetCheckout(c).Place(c.Request().Context(), webserver.SessionID(c), payload.PaymentMethod)
	switch {
	case errors.Is(err, checkout.ErrNoCheckout):
		return fail(c, http.StatusNotFound, "NO_CHECKOUT", "No staged checkout data", nil)
	case errors.Is(err, checkout.ErrUnknownPayment):
		return fail(c, http.StatusBadRequest, "INVALID_PAYMENT", "Unknown payment method", nil)
	case errors.Is(err, mailer.ErrNotConfigured):
		return fail(c, http.StatusInternalServerError, "MAIL_CONFIG", "Server misconfiguration: email relay not configured", nil)
	case err != nil:
		// relay or database failure: the flow stays on the payment step
		return fail(c, http.StatusBadGateway, "ORDER_FAILED", "Failed to place order", err.Error())
	}
	return ok(c, order)
}
