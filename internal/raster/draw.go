package raster

import "fmt"

// VertexArray is a flat list of scalars grouped into vertices of Size
// components. Component c of vertex i lives at Data[i*Size+c].
type VertexArray struct {
	Size int
	Data []float64
}

// Len returns the number of complete vertices in the array.
func (a *VertexArray) Len() int {
	if a == nil || a.Size <= 0 {
		return 0
	}
	return len(a.Data) / a.Size
}

// Viewport maps a normalized device coordinate to pixel space:
// (coord/w + 1) * size/2.
func Viewport(coord, w float64, size int) float64 {
	return (coord/w + 1) * float64(size) / 2
}

// assemble builds the screen-space Vertex for vertex i of the arrays.
// Missing z defaults to 0, missing w to 1 and missing alpha to 1.
func (r *Rasterizer) assemble(pos, col *VertexArray, i int) Vertex {
	p := pos.Data[i*pos.Size : (i+1)*pos.Size]
	c := col.Data[i*col.Size : (i+1)*col.Size]

	z, w := 0.0, 1.0
	if pos.Size >= 3 {
		z = p[2]
	}
	if pos.Size >= 4 {
		w = p[3]
	}
	a := 1.0
	if col.Size >= 4 {
		a = c[3]
	}

	return Vertex{
		X: Viewport(p[0], w, r.fb.Width),
		Y: Viewport(p[1], w, r.fb.Height),
		Z: z / w,
		W: 1 / w,
		R: c[0],
		G: c[1],
		B: c[2],
		A: a,
	}
}

// DrawArraysTriangles draws count consecutive vertices starting at first as
// independent triangles, three vertices per triangle.
func (r *Rasterizer) DrawArraysTriangles(first, count int, pos, col *VertexArray) error {
	if err := checkArrays(pos, col); err != nil {
		return err
	}
	if first < 0 || count < 0 || count%3 != 0 {
		return fmt.Errorf("raster: drawArraysTriangles: bad range first=%d count=%d", first, count)
	}
	if n := min(pos.Len(), col.Len()); first > n || count > n-first {
		return fmt.Errorf("raster: drawArraysTriangles: %d vertices from %d exceed %d positions, %d colors",
			count, first, pos.Len(), col.Len())
	}

	for i := first; i < first+count; i += 3 {
		r.DrawTriangle(r.assemble(pos, col, i), r.assemble(pos, col, i+1), r.assemble(pos, col, i+2))
	}
	return nil
}

// DrawElementsTriangles draws count vertices taken through the index list,
// starting at elements[offset], three indices per triangle.
func (r *Rasterizer) DrawElementsTriangles(count, offset int, elements []int, pos, col *VertexArray) error {
	if err := checkArrays(pos, col); err != nil {
		return err
	}
	if offset < 0 || count < 0 || count%3 != 0 || offset > len(elements) || count > len(elements)-offset {
		return fmt.Errorf("raster: drawElementsTriangles: bad range count=%d offset=%d over %d elements",
			count, offset, len(elements))
	}
	n := min(pos.Len(), col.Len())
	for _, idx := range elements[offset : offset+count] {
		if idx < 0 || idx >= n {
			return fmt.Errorf("raster: drawElementsTriangles: index %d out of range [0,%d)", idx, n)
		}
	}

	for k := offset; k < offset+count; k += 3 {
		r.DrawTriangle(
			r.assemble(pos, col, elements[k]),
			r.assemble(pos, col, elements[k+1]),
			r.assemble(pos, col, elements[k+2]),
		)
	}
	return nil
}

func checkArrays(pos, col *VertexArray) error {
	if pos == nil || pos.Size < 2 || pos.Size > 4 {
		return fmt.Errorf("raster: position array needs 2 to 4 components")
	}
	if col == nil || col.Size < 3 || col.Size > 4 {
		return fmt.Errorf("raster: color array needs 3 or 4 components")
	}
	return nil
}
