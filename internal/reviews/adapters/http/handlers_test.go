package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	reviewshttp "github.com/shopcore/storefront/internal/reviews/adapters/http"
	"github.com/shopcore/storefront/internal/reviews/adapters/memory"
	"github.com/shopcore/storefront/internal/reviews/app"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	service := app.NewService(memory.NewReviewRepository())
	mux := http.NewServeMux()
	reviewshttp.NewHandler(service).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestReviewEndpoints(t *testing.T) {
	server := newTestServer(t)

	payload := map[string]any{
		"user_id":     "user-1",
		"product_id":  "prod-1",
		"title":       "Great fit",
		"description": "Comfortable straight out of the box.",
		"rating":      4,
	}

	resp := postJSON(t, server.URL+"/v1/reviews", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	review, ok := body["review"].(map[string]any)
	if !ok {
		t.Fatalf("expected review in response, got %v", body)
	}
	reviewID, _ := review["ID"].(string)
	if reviewID == "" {
		t.Fatal("expected review ID in response")
	}

	t.Run("get by id", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/v1/reviews/" + reviewID)
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		body := decodeBody(t, resp)
		review, ok := body["review"].(map[string]any)
		if !ok || review["Description"] != "Comfortable straight out of the box." {
			t.Errorf("unexpected review body: %v", body)
		}
	})

	t.Run("list filtered by user", func(t *testing.T) {
		other := map[string]any{
			"user_id":     "user-2",
			"description": "Shipping took a week.",
			"rating":      2,
		}
		postJSON(t, server.URL+"/v1/reviews", other).Body.Close()

		resp, err := http.Get(server.URL + "/v1/reviews?user_id=user-2")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		body := decodeBody(t, resp)
		reviews, ok := body["reviews"].([]any)
		if !ok || len(reviews) != 1 {
			t.Errorf("expected 1 review for user-2, got %v", body)
		}
	})

	t.Run("list filtered by product", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/v1/reviews?product_id=prod-1")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		body := decodeBody(t, resp)
		reviews, ok := body["reviews"].([]any)
		if !ok || len(reviews) != 1 {
			t.Errorf("expected 1 review for prod-1, got %v", body)
		}
	})

	t.Run("missing description rejected", func(t *testing.T) {
		bad := map[string]any{"user_id": "user-3", "rating": 5}
		resp := postJSON(t, server.URL+"/v1/reviews", bad)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("rating above range rejected", func(t *testing.T) {
		bad := map[string]any{
			"user_id":     "user-3",
			"description": "way too enthusiastic",
			"rating":      9,
		}
		resp := postJSON(t, server.URL+"/v1/reviews", bad)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("omitted rating defaults to minimum", func(t *testing.T) {
		minimal := map[string]any{
			"user_id":     "user-4",
			"description": "Store layout is easy to browse.",
		}
		resp := postJSON(t, server.URL+"/v1/reviews", minimal)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		review, ok := body["review"].(map[string]any)
		if !ok || review["Rating"] != float64(1) {
			t.Errorf("expected rating defaulted to 1, got %v", body)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, server.URL+"/v1/reviews/"+reviewID, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("DELETE failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}

		getResp, err := http.Get(server.URL + "/v1/reviews/" + reviewID)
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		getResp.Body.Close()
		if getResp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", getResp.StatusCode)
		}
	})

	t.Run("delete missing review", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, server.URL+"/v1/reviews/missing", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("DELETE failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})
}
