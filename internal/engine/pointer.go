package engine

type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

// pointer turns absolute cursor positions into per-event drag deltas.
type pointer struct {
	mode         dragMode
	lastX, lastY float64
}

func (p *pointer) press(mode dragMode, x, y float64) {
	p.mode = mode
	p.lastX, p.lastY = x, y
}

func (p *pointer) release() {
	p.mode = dragNone
}

// move reports the active drag and the cursor delta since the last event.
// Outside a drag the delta is zero.
func (p *pointer) move(x, y float64) (dragMode, float32, float32) {
	if p.mode == dragNone {
		return dragNone, 0, 0
	}
	dx, dy := x-p.lastX, y-p.lastY
	p.lastX, p.lastY = x, y
	return p.mode, float32(dx), float32(dy)
}
