package resources_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/perceptai/perceptai/internal/app/features/resources"
	"github.com/perceptai/perceptai/internal/domain/models"
	"github.com/perceptai/perceptai/internal/testutil"
	"go.uber.org/zap"
)

func newServer(t *testing.T) (*httptest.Server, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := resources.NewHandler(db, zap.NewNop())
	srv := httptest.NewServer(resources.Routes(h))
	t.Cleanup(srv.Close)
	return srv, testutil.NewFixtures(t, db)
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestCreateAndGet(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/", map[string]any{
		"title":       "OpenCV Basics",
		"description": "Introductory tutorial",
		"category":    "Tutorial",
		"url":         "https://example.com/opencv",
		"author":      "Ada",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: got %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	created := decode[models.Resource](t, resp)

	resp = do(t, http.MethodGet, srv.URL+"/"+created.ID.Hex(), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	got := decode[models.Resource](t, resp)
	if got.Title != "OpenCV Basics" {
		t.Errorf("title: got %q", got.Title)
	}
	if got.Views != 1 {
		t.Errorf("views: got %d, want 1", got.Views)
	}
}

func TestCreateRejectsBadCategory(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/", map[string]any{
		"title":       "Bad",
		"description": "Bad category",
		"category":    "Webinar",
		"url":         "https://example.com",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestAddReviewRecomputesRating(t *testing.T) {
	srv, fx := newServer(t)
	ctx := testutil.TestContext(t)

	res := fx.CreateResource(ctx, "Reviewed Resource")
	base := srv.URL + "/" + res.ID.Hex()

	resp := do(t, http.MethodPost, base+"/review", map[string]any{
		"userId": "u-1", "rating": 5, "comment": "great",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("review status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp = do(t, http.MethodPost, base+"/review", map[string]any{
		"userId": "u-2", "rating": 2,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second review status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	out := decode[struct {
		Rating  float64 `json:"rating"`
		Reviews int     `json:"reviews"`
	}](t, resp)

	if math.Abs(out.Rating-3.5) > 1e-9 {
		t.Errorf("rating: got %v, want 3.5", out.Rating)
	}
	if out.Reviews != 2 {
		t.Errorf("reviews: got %d, want 2", out.Reviews)
	}
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	srv, fx := newServer(t)
	ctx := testutil.TestContext(t)

	res := fx.CreateResource(ctx, "Strict Resource")

	resp := do(t, http.MethodPost, srv.URL+"/"+res.ID.Hex()+"/review", map[string]any{
		"userId": "u-1", "rating": 6,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
