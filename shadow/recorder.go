package shadow

import "math"

// FrameRecord is the snapshot of one recorded frame.
type FrameRecord struct {
	Frame int64            `json:"frame" yaml:"frame"`
	World map[string]any   `json:"world" yaml:"world"`
	Items []map[string]any `json:"items" yaml:"items"`
}

// DefaultItemProperties is the item attribute allow-list used by NewRecorder.
var DefaultItemProperties = []string{
	"id", "name", "width", "height", "scale", "location", "velocity", "angle",
	"minSpeed", "maxSpeed", "hue", "saturation", "lightness", "color", "opacity",
}

// DefaultWorldProperties is the world attribute allow-list used by NewRecorder.
var DefaultWorldProperties = []string{
	"id", "name", "width", "height", "resolution", "colorMode",
}

// Recorder captures allow-listed attributes of live items once per frame.
// A window is active only when both StartFrame and EndFrame are set
// (non-negative); without one every frame is captured while Enabled.
type Recorder struct {
	Enabled         bool
	StartFrame      int64
	EndFrame        int64
	ItemProperties  []string
	WorldProperties []string

	current *FrameRecord
	records []FrameRecord
}

func NewRecorder() *Recorder {
	return &Recorder{
		StartFrame:      -1,
		EndFrame:        -1,
		ItemProperties:  DefaultItemProperties,
		WorldProperties: DefaultWorldProperties,
	}
}

// InWindow reports whether frame falls inside the recording window.
func (r *Recorder) InWindow(frame int64) bool {
	if r.StartFrame < 0 || r.EndFrame < 0 {
		return true
	}
	return frame >= r.StartFrame && frame <= r.EndFrame
}

func (r *Recorder) begin(frame int64) {
	r.current = nil
	if !r.Enabled {
		return
	}
	r.current = &FrameRecord{Frame: frame, World: map[string]any{}, Items: []map[string]any{}}
}

// capture snapshots it into the current frame. The world snapshot is merged
// once per frame, from the first captured item's world.
func (r *Recorder) capture(it *Item) {
	if r.current == nil || it.Opacity <= 0 || !r.InWindow(r.current.Frame) {
		return
	}
	snap := make(map[string]any, len(r.ItemProperties))
	for _, name := range r.ItemProperties {
		if v, ok := it.Attr(name); ok {
			snap[name] = normalize(v)
		}
	}
	r.current.Items = append(r.current.Items, snap)

	if _, ok := r.current.World["id"]; ok || it.world == nil {
		return
	}
	for _, name := range r.WorldProperties {
		if v, ok := it.world.Attr(name); ok {
			r.current.World[name] = v
		}
	}
}

// finish closes the current frame and returns it if it lies in the window.
func (r *Recorder) finish() *FrameRecord {
	rec := r.current
	r.current = nil
	if rec == nil || !r.InWindow(rec.Frame) {
		return nil
	}
	return rec
}

func (r *Recorder) keep(rec FrameRecord) {
	r.records = append(r.records, rec)
}

// Records returns the accumulated frames.
func (r *Recorder) Records() []FrameRecord {
	return r.records
}

// Drain returns the accumulated frames and forgets them.
func (r *Recorder) Drain() []FrameRecord {
	out := r.records
	r.records = nil
	return out
}

// Reset drops accumulated and in-progress frames. Settings are kept.
func (r *Recorder) Reset() {
	r.current = nil
	r.records = nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func normalize(v any) any {
	switch v := v.(type) {
	case Vector:
		return map[string]any{"x": round2(v.X), "y": round2(v.Y)}
	case float64:
		return round2(v)
	case RGB:
		return []int{int(v[0]), int(v[1]), int(v[2])}
	}
	return v
}
