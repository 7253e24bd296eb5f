package reader

// Stats counts what a read found. Warnings and Errors count the recoverable
// problems that were logged while reading continued.
type Stats struct {
	Vertices    int `json:"vertices"`
	Indices     int `json:"indices"`
	Tris        int `json:"tris"`
	Lights      int `json:"lights"`
	LODs        int `json:"lods"`
	GlobalAttrs int `json:"globalAttrs"`
	Attrs       int `json:"attrs"`
	Manips      int `json:"manips"`
	Anims       int `json:"anims"`
	Unknown     int `json:"unknown"`
	Warnings    int `json:"warnings"`
	Errors      int `json:"errors"`
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Vertices += o.Vertices
	s.Indices += o.Indices
	s.Tris += o.Tris
	s.Lights += o.Lights
	s.LODs += o.LODs
	s.GlobalAttrs += o.GlobalAttrs
	s.Attrs += o.Attrs
	s.Manips += o.Manips
	s.Anims += o.Anims
	s.Unknown += o.Unknown
	s.Warnings += o.Warnings
	s.Errors += o.Errors
}

// Fields returns the counters keyed by their JSON names.
func (s Stats) Fields() map[string]any {
	return map[string]any{
		"vertices":    s.Vertices,
		"indices":     s.Indices,
		"tris":        s.Tris,
		"lights":      s.Lights,
		"lods":        s.LODs,
		"globalAttrs": s.GlobalAttrs,
		"attrs":       s.Attrs,
		"manips":      s.Manips,
		"anims":       s.Anims,
		"unknown":     s.Unknown,
		"warnings":    s.Warnings,
		"errors":      s.Errors,
	}
}
