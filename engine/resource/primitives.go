package resource

// Built-in flat primitives in normalized device coordinates, handy for
// smoke-testing the render path without loading any assets.

// NewTriangle creates a pending triangle mesh with the given uniform color.
func NewTriangle(name string, color [4]float32) *Mesh {
	return NewMesh(name, []Vertex{
		{Position: [3]float32{0.0, 0.5, 0.0}, Color: color},
		{Position: [3]float32{-0.5, -0.5, 0.0}, Color: color},
		{Position: [3]float32{0.5, -0.5, 0.0}, Color: color},
	}, []uint32{0, 1, 2})
}

// NewQuad creates a pending unit quad mesh with the given uniform color.
func NewQuad(name string, color [4]float32) *Mesh {
	return NewMesh(name, []Vertex{
		{Position: [3]float32{-0.5, 0.5, 0.0}, Color: color},
		{Position: [3]float32{-0.5, -0.5, 0.0}, Color: color},
		{Position: [3]float32{0.5, -0.5, 0.0}, Color: color},
		{Position: [3]float32{0.5, 0.5, 0.0}, Color: color},
	}, []uint32{0, 1, 2, 2, 3, 0})
}

// NewPentagon creates a pending pentagon mesh with the given uniform color.
func NewPentagon(name string, color [4]float32) *Mesh {
	return NewMesh(name, []Vertex{
		{Position: [3]float32{-0.0868241, 0.49240386, 0.0}, Color: color},
		{Position: [3]float32{-0.49513406, 0.06958647, 0.0}, Color: color},
		{Position: [3]float32{-0.21918549, -0.44939706, 0.0}, Color: color},
		{Position: [3]float32{0.35966998, -0.3473291, 0.0}, Color: color},
		{Position: [3]float32{0.44147372, 0.2347359, 0.0}, Color: color},
	}, []uint32{0, 1, 4, 1, 2, 4, 2, 3, 4})
}
