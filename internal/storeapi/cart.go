package storeapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lahorisamosa/lahorisamosa/internal/cart"
	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

func registerCartRoutes() {
	webserver.PubGET("/cart", getCart)
	webserver.PubPOST("/cart/items", addCartItem)
	webserver.PubPUT("/cart/items/:id", updateCartItem)
	webserver.PubDELETE("/cart/items/:id", removeCartItem)
	webserver.PubDELETE("/cart", clearCart)
	webserver.PubPOST("/cart/open", openSideCart)
	webserver.PubPOST("/cart/close", closeSideCart)
}

func getCart(c echo.Context) error {
	state, err := webserver.GetCarts(c).Get(webserver.SessionID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to load cart", err.Error())
	}
	return ok(c, state)
}

type addItemPayload struct {
	ProductID int64 `json:"product_id,string"`
}

func addCartItem(c echo.Context) error {
	var payload addItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}

	// price and name are snapshotted from the catalog at add time
	var p domain.Product
	if err := webserver.GetDB(c).Where("id = ?", payload.ProductID).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	state, err := webserver.GetCarts(c).Mutate(webserver.SessionID(c), func(s *cart.State) {
		s.Add(cart.Item{ProductID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image})
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to update cart", err.Error())
	}
	return ok(c, state)
}

type updateItemPayload struct {
	Quantity int `json:"quantity"`
}

func updateCartItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload updateItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}

	// unknown ids are a no-op by design
	state, err := webserver.GetCarts(c).Mutate(webserver.SessionID(c), func(s *cart.State) {
		s.UpdateQuantity(id, payload.Quantity)
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to update cart", err.Error())
	}
	return ok(c, state)
}

func removeCartItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	state, err := webserver.GetCarts(c).Mutate(webserver.SessionID(c), func(s *cart.State) {
		s.Remove(id)
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to update cart", err.Error())
	}
	return ok(c, state)
}

func clearCart(c echo.Context) error {
	state, err := webserver.GetCarts(c).Mutate(webserver.SessionID(c), func(s *cart.State) {
		s.Clear()
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to clear cart", err.Error())
	}
	return ok(c, state)
}

func openSideCart(c echo.Context) error {
	return setSideCart(c, true)
}

func closeSideCart(c echo.Context) error {
	return setSideCart(c, false)
}

func setSideCart(c echo.Context, open bool) error {
	state, err := webserver.GetCarts(c).Mutate(webserver.SessionID(c), func(s *cart.State) {
		s.SideCartOpen = open
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to update cart", err.Error())
	}
	return ok(c, state)
}
