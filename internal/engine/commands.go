package engine

import (
	"encoding/json"
	"slices"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op       string       `json:"op"`                 // Operation: "path" or "trail"
	ShapeID  string       `json:"shapeId,omitempty"`  // For hit correlation
	ParentID string       `json:"parentId,omitempty"` // Set on pieces of a cut shape
	Tag      string       `json:"tag,omitempty"`
	D        string       `json:"d,omitempty"` // SVG path data for "path" ops
	Fill     string       `json:"fill,omitempty"`
	Stroke   string       `json:"stroke,omitempty"`
	PlayerID string       `json:"playerId,omitempty"` // Owner of a "trail" op
	Points   [][2]float64 `json:"points,omitempty"`   // Segment endpoints for "trail" ops
	Width    float64      `json:"width,omitempty"`    // Stroke width
}

// CompileDrawCommands generates a draw command buffer. Shapes come first
// in scene order, then trails sorted by player.
func CompileDrawCommands(shapes []*Shape, trails map[string]*Trail) []DrawCommand {
	var commands []DrawCommand
	for _, s := range shapes {
		compileShape(s, "", &commands)
	}

	players := make([]string, 0, len(trails))
	for id := range trails {
		players = append(players, id)
	}
	slices.Sort(players)
	for _, id := range players {
		compileTrail(id, trails[id], &commands)
	}
	return commands
}

// compileShape emits the shape, or recurses into its pieces once cut.
func compileShape(s *Shape, parentID string, commands *[]DrawCommand) {
	if s.IsCut() {
		for _, c := range s.children {
			compileShape(c, s.ID, commands)
		}
		return
	}
	*commands = append(*commands, DrawCommand{
		Op:       "path",
		ShapeID:  s.ID,
		ParentID: parentID,
		Tag:      s.Tag,
		D:        s.path.String(),
		Fill:     s.Fill,
		Stroke:   s.Stroke,
	})
}

// compileTrail emits one stroke per segment, thinning as samples age.
func compileTrail(playerID string, t *Trail, commands *[]DrawCommand) {
	pts := t.points
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		*commands = append(*commands, DrawCommand{
			Op:       "trail",
			PlayerID: playerID,
			Points:   [][2]float64{{a.X, a.Y}, {b.X, b.Y}},
			Width:    float64(a.Draws) * 2,
		})
	}
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTest returns the ID of the topmost (frontmost) piece whose bounds
// contain the point, or empty string.
func HitTest(shapes []*Shape, x, y float64) string {
	for i := len(shapes) - 1; i >= 0; i-- {
		leaves := shapes[i].Leaves()
		for j := len(leaves) - 1; j >= 0; j-- {
			b := leaves[j].Bounds()
			if !b.IsEmpty() && b.Contains(x, y) {
				return leaves[j].ID
			}
		}
	}
	return ""
}
