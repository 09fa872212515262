//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/samuraislice/slicer/internal/catalog"
	"github.com/samuraislice/slicer/internal/engine"
	"github.com/samuraislice/slicer/internal/geom"
)

// localPlayer owns the pointer in the single-player browser build.
const localPlayer = "local"

var eng *engine.Engine

func main() {
	eng = engine.New(engine.DefaultOptions(), nil)

	// Create the engine API object
	slicerEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	slicerEngine.Set("loadCatalog", js.FuncOf(loadCatalog))
	slicerEngine.Set("spawn", js.FuncOf(spawn))
	slicerEngine.Set("spawnComposite", js.FuncOf(spawnComposite))
	slicerEngine.Set("spawnWord", js.FuncOf(spawnWord))
	slicerEngine.Set("remove", js.FuncOf(remove))
	slicerEngine.Set("pointerDown", js.FuncOf(pointerDown))
	slicerEngine.Set("pointerMove", js.FuncOf(pointerMove))
	slicerEngine.Set("pointerUp", js.FuncOf(pointerUp))
	slicerEngine.Set("onSplit", js.FuncOf(onSplit))
	slicerEngine.Set("tick", js.FuncOf(tick))

	// --- Queries (frontend ← backend) ---
	slicerEngine.Set("render", js.FuncOf(render))
	slicerEngine.Set("hitTest", js.FuncOf(hitTest))
	slicerEngine.Set("getShape", js.FuncOf(getShape))
	slicerEngine.Set("getKinds", js.FuncOf(getKinds))
	slicerEngine.Set("getFrame", js.FuncOf(getFrame))

	// Register on global scope
	js.Global().Set("slicerEngine", slicerEngine)

	// Signal that WASM is ready
	js.Global().Set("slicerWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func idsResult(shapes ...*engine.Shape) interface{} {
	ids := make([]interface{}, len(shapes))
	for i, s := range shapes {
		ids[i] = s.ID
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "ids": ids})
}

// point reads args[i], args[i+1] as a point, defaulting to zero.
func point(args []js.Value, i int) geom.Point {
	if len(args) < i+2 {
		return geom.Point{}
	}
	return geom.Pt(args[i].Float(), args[i+1].Float())
}

// --- Command Handlers ---

// loadCatalog replaces the engine with one using the given catalog YAML.
// Existing shapes are discarded.
func loadCatalog(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing catalog YAML"})
	}
	cat, err := catalog.Load([]byte(args[0].String()))
	if err != nil {
		return errorResult(err)
	}
	eng = engine.New(eng.Options(), cat)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func spawn(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing kind"})
	}
	s, err := eng.Spawn(args[0].String(), point(args, 1), point(args, 3))
	if err != nil {
		return errorResult(err)
	}
	return idsResult(s)
}

func spawnComposite(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing composite name"})
	}
	shapes, err := eng.SpawnComposite(args[0].String(), point(args, 1), point(args, 3))
	if err != nil {
		return errorResult(err)
	}
	return idsResult(shapes...)
}

func spawnWord(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing text"})
	}
	shapes, err := eng.SpawnWord(args[0].String(), point(args, 1))
	if err != nil {
		return errorResult(err)
	}
	return idsResult(shapes...)
}

func remove(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.Remove(args[0].String()))
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	p := point(args, 0)
	eng.PointerDown(localPlayer, p.X, p.Y)
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	p := point(args, 0)
	eng.PointerMove(localPlayer, p.X, p.Y)
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	eng.PointerUp(localPlayer)
	return nil
}

// onSplit registers a JS callback that receives each split as JSON. The
// returned function unsubscribes it.
func onSplit(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return nil
	}
	callback := args[0]
	unsubscribe := eng.Bus().Subscribe(func(ev engine.SplitEvent) {
		children := make([]string, 0, 2)
		for _, c := range ev.Shape.Children() {
			children = append(children, c.ID)
		}
		data, _ := json.Marshal(map[string]interface{}{
			"eventId":  ev.ID,
			"shapeId":  ev.Shape.ID,
			"tag":      ev.Shape.Tag,
			"x":        ev.Point.X,
			"y":        ev.Point.Y,
			"children": children,
		})
		callback.Invoke(string(data))
	})

	var release js.Func
	release = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		unsubscribe()
		release.Release()
		return nil
	})
	return release
}

func tick(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Tick())
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("{}")
	}
	s, ok := eng.Shape(args[0].String())
	if !ok {
		return js.ValueOf("{}")
	}
	b := s.Bounds()
	data, _ := json.Marshal(map[string]interface{}{
		"id":     s.ID,
		"tag":    s.Tag,
		"d":      s.PathString(),
		"cut":    s.IsCut(),
		"bounds": map[string]float64{"x": b.X, "y": b.Y, "width": b.Width, "height": b.Height},
	})
	return js.ValueOf(string(data))
}

func getKinds(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(eng.Catalog().Kinds())
	return js.ValueOf(string(data))
}

func getFrame(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Frame())
}
