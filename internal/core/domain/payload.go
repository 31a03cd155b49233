package domain

// Payload is a stage output. It is a closed variant: the engine never
// inspects payloads beyond their kind, and consumers can switch
// exhaustively. Payloads are immutable by contract — they are shared
// between the cache and every consumer without copying, so a stage must
// build a new payload rather than mutate one it received.
type Payload interface {
	isPayload()
}

// EmptyPayload is the "no data" output. Downstream nodes must treat it as a
// valid, non-crashing input state (e.g. after an upstream failure).
type EmptyPayload struct{}

func (EmptyPayload) isPayload() {}

// ValuePayload wraps a single parameter-style value, used by scalar nodes.
type ValuePayload struct {
	Value Value
}

func (ValuePayload) isPayload() {}

// ScenePayload is ingested scene data: flat element name lists grouped by
// class, tagged with the resource they came from.
type ScenePayload struct {
	Source    string
	Meshes    []string
	Materials []string
	Lights    []string
	Cameras   []string
}

func (ScenePayload) isPayload() {}

// Elements returns the total element count across all classes.
func (s ScenePayload) Elements() int {
	return len(s.Meshes) + len(s.Materials) + len(s.Lights) + len(s.Cameras)
}
