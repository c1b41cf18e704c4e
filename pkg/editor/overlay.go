package editor

// Rect is a bounding box in surface pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Height float64 `json:"height"`
}

// Geometry is what the editing surface reports about the caret.
// Either rectangle may be missing when the selection is detached.
type Geometry struct {
	Caret   *Rect `json:"caret,omitempty"`
	Surface *Rect `json:"surface,omitempty"`
}

// Point is the overlay's offset inside the editing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FallbackPosition is used whenever caret geometry cannot be read.
var FallbackPosition = Point{X: 20, Y: 60}

const overlayGap = 5

// PlaceOverlay positions the suggestion just below the caret.
func PlaceOverlay(g *Geometry) Point {
	if g == nil || g.Caret == nil || g.Surface == nil || g.Caret.Height <= 0 {
		return FallbackPosition
	}
	return Point{
		X: max(0, g.Caret.Left-g.Surface.Left),
		Y: max(0, g.Caret.Bottom-g.Surface.Top+overlayGap),
	}
}
