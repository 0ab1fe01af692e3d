//go:build integration

package integration

import (
	"fmt"
	"math"
	"net/http"
	"testing"
	"time"
)

func uniqueCartID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func addItem(t *testing.T, cartID string, body map[string]any) cartResponse {
	t.Helper()

	resp := doPost(t, "/api/cart/"+cartID+"/items", body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d", resp.StatusCode)
	}
	return decodeJSON[cartResponse](t, resp)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestGetCart_Empty(t *testing.T) {
	cartID := uniqueCartID("empty")

	resp := doGet(t, "/api/cart/"+cartID)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cart := decodeJSON[cartResponse](t, resp)
	if cart.CartID != cartID {
		t.Errorf("cartId: got %q, want %q", cart.CartID, cartID)
	}
	if cart.Count != 0 || len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got count=%d items=%d", cart.Count, len(cart.Items))
	}
	if !approxEqual(cart.Shipping, 9.99) {
		t.Errorf("shipping: got %v, want 9.99", cart.Shipping)
	}
}

func TestAddItem_Totals(t *testing.T) {
	cartID := uniqueCartID("totals")

	// Product 3 is the Smart LED Light Bulb at 24.99.
	cart := addItem(t, cartID, map[string]any{"productId": "3", "quantity": 1})

	if !approxEqual(cart.Subtotal, 24.99) {
		t.Errorf("subtotal: got %v, want 24.99", cart.Subtotal)
	}
	if !approxEqual(cart.Tax, 2.00) {
		t.Errorf("tax: got %v, want 2.00", cart.Tax)
	}
	if !approxEqual(cart.Shipping, 9.99) {
		t.Errorf("shipping: got %v, want 9.99", cart.Shipping)
	}
	if !approxEqual(cart.Total, 36.98) {
		t.Errorf("total: got %v, want 36.98", cart.Total)
	}
}

func TestAddItem_FreeShippingAboveThreshold(t *testing.T) {
	cartID := uniqueCartID("freeship")

	cart := addItem(t, cartID, map[string]any{"productId": "1", "quantity": 1})

	if !approxEqual(cart.Subtotal, 89.99) {
		t.Errorf("subtotal: got %v, want 89.99", cart.Subtotal)
	}
	if !approxEqual(cart.Shipping, 0) {
		t.Errorf("shipping: got %v, want 0", cart.Shipping)
	}
}

func TestAddItem_MergesRepeatedAdds(t *testing.T) {
	cartID := uniqueCartID("merge")

	addItem(t, cartID, map[string]any{"productId": "3", "quantity": 1})
	cart := addItem(t, cartID, map[string]any{"productId": "3", "quantity": 2})

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Errorf("quantity: got %d, want 3", cart.Items[0].Quantity)
	}
}

func TestAddItem_VariantsAreDistinct(t *testing.T) {
	cartID := uniqueCartID("variants")

	addItem(t, cartID, map[string]any{"productId": "2", "quantity": 1, "selectedVariant": "M"})
	cart := addItem(t, cartID, map[string]any{"productId": "2", "quantity": 1, "selectedVariant": "L"})

	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items))
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	resp := doPost(t, "/api/cart/"+uniqueCartID("unknown")+"/items", map[string]any{
		"productId": "does-not-exist",
		"quantity":  1,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAddItem_InvalidVariant(t *testing.T) {
	resp := doPost(t, "/api/cart/"+uniqueCartID("badsize")+"/items", map[string]any{
		"productId":       "2",
		"quantity":        1,
		"selectedVariant": "XXS",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	body := decodeJSON[messageResponse](t, resp)
	if body.Message != "Invalid size for this product" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestUpdateItem_SetsQuantity(t *testing.T) {
	cartID := uniqueCartID("update")
	addItem(t, cartID, map[string]any{"productId": "3", "quantity": 1})

	resp := doRequest(t, http.MethodPut, "/api/cart/"+cartID+"/items/3", "", map[string]any{
		"quantity": 4,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cart := decodeJSON[cartResponse](t, resp)
	if cart.Count != 4 {
		t.Errorf("count: got %d, want 4", cart.Count)
	}
}

func TestUpdateItem_ZeroRemoves(t *testing.T) {
	cartID := uniqueCartID("zero")
	addItem(t, cartID, map[string]any{"productId": "3", "quantity": 2})

	resp := doRequest(t, http.MethodPut, "/api/cart/"+cartID+"/items/3", "", map[string]any{
		"quantity": 0,
	})
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(cart.Items))
	}
}

func TestRemoveItem(t *testing.T) {
	cartID := uniqueCartID("remove")
	addItem(t, cartID, map[string]any{"productId": "1", "quantity": 1})
	addItem(t, cartID, map[string]any{"productId": "3", "quantity": 1})

	resp := doRequest(t, http.MethodDelete, "/api/cart/"+cartID+"/items/1", "", nil)
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "3" {
		t.Errorf("expected only product 3 to remain, got %+v", cart.Items)
	}
}

func TestClearCart(t *testing.T) {
	cartID := uniqueCartID("clear")
	addItem(t, cartID, map[string]any{"productId": "1", "quantity": 2})

	resp := doRequest(t, http.MethodDelete, "/api/cart/"+cartID, "", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	get := doGet(t, "/api/cart/"+cartID)
	defer get.Body.Close()

	cart := decodeJSON[cartResponse](t, get)
	if cart.Count != 0 {
		t.Errorf("expected cleared cart, got count=%d", cart.Count)
	}
}

func TestCart_PersistsAcrossRequests(t *testing.T) {
	cartID := uniqueCartID("persist")
	addItem(t, cartID, map[string]any{"productId": "1", "quantity": 2})

	resp := doGet(t, "/api/cart/"+cartID)
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Errorf("quantity: got %d, want 2", cart.Items[0].Quantity)
	}
	if !approxEqual(cart.Items[0].UnitPrice, 89.99) {
		t.Errorf("unitPrice: got %v, want 89.99", cart.Items[0].UnitPrice)
	}
}
