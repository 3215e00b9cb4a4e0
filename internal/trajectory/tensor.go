package trajectory

// StateComponents is the number of state components per body, in fixed
// order: x, y, z, vx, vy, vz.
const StateComponents = 6

// Tensor holds evaluation results with shape (T, N, 6): T output times,
// N bodies, 6 state components. Storage is flat, row-major.
type Tensor struct {
	times  int
	bodies int
	data   []float64
}

func NewTensor(times, bodies int) *Tensor {
	return &Tensor{
		times:  times,
		bodies: bodies,
		data:   make([]float64, times*bodies*StateComponents),
	}
}

// Shape returns (T, N, 6).
func (r *Tensor) Shape() (int, int, int) {
	return r.times, r.bodies, StateComponents
}

func (r *Tensor) At(t, body, comp int) float64 {
	return r.data[(t*r.bodies+body)*StateComponents+comp]
}

func (r *Tensor) Set(t, body, comp int, v float64) {
	r.data[(t*r.bodies+body)*StateComponents+comp] = v
}

// Row returns the slice of all body states at output time index t,
// N×6 components, backed by the tensor's storage.
func (r *Tensor) Row(t int) []float64 {
	w := r.bodies * StateComponents
	return r.data[t*w : (t+1)*w]
}

// Body returns the 6-component state of one body at one output time.
func (r *Tensor) Body(t, body int) [StateComponents]float64 {
	var out [StateComponents]float64
	copy(out[:], r.data[(t*r.bodies+body)*StateComponents:])
	return out
}

// Data exposes the flat backing array (length T·N·6).
func (r *Tensor) Data() []float64 { return r.data }
