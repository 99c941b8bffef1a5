package renderer

// Unwind collects cleanup functions and runs them in reverse order. It is
// used to roll back partially created GL resources on error.
type Unwind []func()

func (u *Unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

func (u *Unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = (*u)[:0]
}

// Discard drops the pending cleanups once the resources are committed.
func (u *Unwind) Discard() {
	*u = (*u)[:0]
}
