package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopcore/storefront/internal/cart/adapters/memory"
	"github.com/shopcore/storefront/internal/cart/app"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	service := app.NewService(memory.NewCartStore(), memory.NewGuestCartStore())
	handler := NewHandler(service)

	mux := http.NewServeMux()
	handler.Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, headers map[string]string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func cartItems(t *testing.T, resp *http.Response) []any {
	t.Helper()
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	cart, _ := decoded["cart"].(map[string]any)
	items, _ := cart["items"].([]any)
	return items
}

func TestUserCartFlow(t *testing.T) {
	server := newTestServer(t)
	asUser := map[string]string{"X-User-ID": "user-1"}

	t.Run("requires identification", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/v1/cart")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("add and read", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/v1/cart/items", asUser,
			map[string]any{"product_id": "prod-1", "quantity": 2})
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}

		items := cartItems(t, doJSON(t, http.MethodGet, server.URL+"/v1/cart", asUser, nil))
		if len(items) != 1 {
			t.Errorf("expected 1 item, got %v", items)
		}
	})

	t.Run("re-add reports already in cart", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/v1/cart/items", asUser,
			map[string]any{"product_id": "prod-1", "quantity": 5})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 no-op, got %d", resp.StatusCode)
		}
	})

	t.Run("update quantity", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, server.URL+"/v1/cart/items/prod-1", asUser,
			map[string]any{"quantity": 4})
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown line is 404", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, server.URL+"/v1/cart/items/ghost", asUser,
			map[string]any{"quantity": 4})
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("clear", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, server.URL+"/v1/cart", asUser, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}

		items := cartItems(t, doJSON(t, http.MethodGet, server.URL+"/v1/cart", asUser, nil))
		if len(items) != 0 {
			t.Errorf("expected empty cart, got %v", items)
		}
	})
}

func TestGuestCartAndMerge(t *testing.T) {
	server := newTestServer(t)
	asGuest := map[string]string{"X-Guest-Token": "token-1"}
	asUser := map[string]string{"X-User-ID": "user-1"}

	resp := doJSON(t, http.MethodPost, server.URL+"/v1/guest-cart/items", asGuest,
		map[string]any{"product_id": "prod-2", "quantity": 3})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	items := cartItems(t, doJSON(t, http.MethodGet, server.URL+"/v1/guest-cart", asGuest, nil))
	if len(items) != 1 {
		t.Fatalf("expected 1 guest item, got %v", items)
	}

	mergeResp := doJSON(t, http.MethodPost, server.URL+"/v1/cart/merge", asUser,
		map[string]any{"token": "token-1"})
	if mergeResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from merge, got %d", mergeResp.StatusCode)
	}
	merged := cartItems(t, mergeResp)
	if len(merged) != 1 {
		t.Errorf("expected 1 item after merge, got %v", merged)
	}

	items = cartItems(t, doJSON(t, http.MethodGet, server.URL+"/v1/guest-cart", asGuest, nil))
	if len(items) != 0 {
		t.Errorf("expected guest cart emptied, got %v", items)
	}
}
