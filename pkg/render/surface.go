package render

// Surface is the host drawing target the rasterizer paints onto.
//
// Size is queried every frame; implementations may change size between
// frames (resizable windows, terminals).
type Surface interface {
	Size() (width, height int)
	Clear(c Color)
	DrawLine(x0, y0, x1, y1 int, c Color)
}
