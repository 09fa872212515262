package preview

import (
	"encoding/json"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/samuraislice/slicer/internal/catalog"
	"github.com/samuraislice/slicer/internal/engine"
)

func newRouter() *mux.Router {
	h := NewHandler(catalog.Default(), engine.DefaultOptions())
	r := mux.NewRouter()
	r.HandleFunc("/catalog", h.List).Methods("GET")
	r.HandleFunc("/catalog/{kind}/preview.png", h.Preview).Methods("GET")
	r.HandleFunc("/catalog/{kind}/slice", h.Slice).Methods("GET")
	return r
}

func get(t *testing.T, r http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestList(t *testing.T) {
	rec := get(t, newRouter(), "/catalog")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp ListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Shapes) == 0 || resp.Letters == "" {
		t.Errorf("List() = %+v", resp)
	}
}

func TestPreview(t *testing.T) {
	r := newRouter()

	rec := get(t, r, "/catalog/bamboo/preview.png?scale=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	// Bamboo bounds plus margin at one pixel per unit.
	if b := img.Bounds(); b.Dx() < 25 || b.Dy() < 135 {
		t.Errorf("image size = %v", b)
	}

	cut := get(t, r, "/catalog/bamboo/preview.png?cut=-20,65,40,65")
	if cut.Code != http.StatusOK {
		t.Errorf("cut preview status = %d", cut.Code)
	}
}

func TestPreview_Errors(t *testing.T) {
	r := newRouter()
	tests := []struct {
		url  string
		want int
	}{
		{"/catalog/dragon/preview.png", http.StatusNotFound},
		{"/catalog/bamboo/preview.png?scale=0", http.StatusBadRequest},
		{"/catalog/bamboo/preview.png?scale=big", http.StatusBadRequest},
		{"/catalog/bamboo/preview.png?cut=1,2,3", http.StatusBadRequest},
		{"/catalog/bamboo/slice?cut=a,b,c,d", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if rec := get(t, r, tt.url); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	r := newRouter()

	var whole SliceResponse
	rec := get(t, r, "/catalog/bamboo/slice")
	if err := json.NewDecoder(rec.Body).Decode(&whole); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if whole.Cut || len(whole.Pieces) != 1 {
		t.Fatalf("uncut slice = %+v", whole)
	}

	var cut SliceResponse
	rec = get(t, r, "/catalog/bamboo/slice?cut=-20,65,40,65")
	if err := json.NewDecoder(rec.Body).Decode(&cut); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !cut.Cut || len(cut.Pieces) != 2 {
		t.Fatalf("cut slice = %+v", cut)
	}
	sum := cut.Pieces[0].Area + cut.Pieces[1].Area
	if math.Abs(sum-whole.Pieces[0].Area)/whole.Pieces[0].Area > 0.02 {
		t.Errorf("piece areas sum to %.1f, whole is %.1f", sum, whole.Pieces[0].Area)
	}
}
