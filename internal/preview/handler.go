// Package preview serves the shape catalog over HTTP: a listing, PNG
// renders and a JSON slice endpoint, each optionally after one swipe.
package preview

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/samuraislice/slicer/internal/catalog"
	"github.com/samuraislice/slicer/internal/engine"
	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/raster"
)

const (
	defaultScale = 2
	maxScale     = 8
	margin       = 4
	previewUser  = "preview"
)

var background = color.RGBA{R: 0x1d, G: 0x1f, B: 0x2b, A: 0xff}

// Handler serves catalog endpoints.
type Handler struct {
	catalog *catalog.Catalog
	opts    engine.Options
}

// NewHandler creates a handler over cat. Gravity is ignored: previews are
// rendered where the shape spawns.
func NewHandler(cat *catalog.Catalog, opts engine.Options) *Handler {
	opts.Gravity = 0
	return &Handler{catalog: cat, opts: opts}
}

// ListResponse is returned from GET /catalog.
type ListResponse struct {
	Shapes     []string `json:"shapes"`
	Composites []string `json:"composites"`
	Letters    string   `json:"letters"`
}

// Piece is one closed contour in a slice response.
type Piece struct {
	ID   string  `json:"id"`
	D    string  `json:"d"`
	Area float64 `json:"area"`
}

// SliceResponse is returned from GET /catalog/{kind}/slice.
type SliceResponse struct {
	Kind   string  `json:"kind"`
	Cut    bool    `json:"cut"`
	Pieces []Piece `json:"pieces"`
}

// List handles GET /catalog.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ListResponse{
		Shapes:     h.catalog.Kinds(),
		Composites: h.catalog.CompositeNames(),
		Letters:    h.catalog.Letters(),
	})
}

// Preview handles GET /catalog/{kind}/preview.png.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	shape, ok := h.slice(w, r)
	if !ok {
		return
	}

	scale := defaultScale
	if v := r.URL.Query().Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxScale {
			http.Error(w, fmt.Sprintf("scale must be 1..%d", maxScale), http.StatusBadRequest)
			return
		}
		scale = n
	}

	b := shape.Bounds()
	view := geom.Rect{X: b.X - margin, Y: b.Y - margin, Width: b.Width + 2*margin, Height: b.Height + 2*margin}
	canvas := raster.NewCanvas(view, float64(scale), background)
	for _, piece := range shape.Leaves() {
		fill, ok := raster.ParseColor(piece.Fill)
		if !ok {
			fill = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}
		canvas.Fill(piece.Path(), fill)
	}

	w.Header().Set("Content-Type", "image/png")
	if err := canvas.EncodePNG(w); err != nil {
		slog.Error("encode preview", "error", err, "kind", mux.Vars(r)["kind"])
	}
}

// Slice handles GET /catalog/{kind}/slice and returns the resulting
// contours with their areas.
func (h *Handler) Slice(w http.ResponseWriter, r *http.Request) {
	shape, ok := h.slice(w, r)
	if !ok {
		return
	}
	resp := SliceResponse{Kind: mux.Vars(r)["kind"], Cut: shape.IsCut()}
	for _, piece := range shape.Leaves() {
		resp.Pieces = append(resp.Pieces, Piece{
			ID:   piece.ID,
			D:    piece.PathString(),
			Area: raster.Area(piece.Path(), defaultScale),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// slice spawns the requested kind at the origin and applies the optional
// cut query. It writes the error response itself.
func (h *Handler) slice(w http.ResponseWriter, r *http.Request) (*engine.Shape, bool) {
	kind := mux.Vars(r)["kind"]

	eng := engine.New(h.opts, h.catalog)
	shape, err := eng.Spawn(kind, geom.Point{}, geom.Point{})
	if errors.Is(err, catalog.ErrUnknownKind) {
		http.Error(w, "unknown shape kind", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}

	if v := r.URL.Query().Get("cut"); v != "" {
		a, b, err := parseCut(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		eng.PointerDown(previewUser, a.X, a.Y)
		eng.PointerMove(previewUser, b.X, b.Y)
		eng.Step()
	}
	return shape, true
}

// parseCut reads "x1,y1,x2,y2".
func parseCut(s string) (geom.Point, geom.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Point{}, geom.Point{}, errors.New("cut must be x1,y1,x2,y2")
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Point{}, geom.Point{}, fmt.Errorf("cut: %w", err)
		}
		v[i] = f
	}
	return geom.Pt(v[0], v[1]), geom.Pt(v[2], v[3]), nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
