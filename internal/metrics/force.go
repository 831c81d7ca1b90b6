package metrics

// PeakForce tracks the largest force observed.
type PeakForce struct {
	name string
	peak float64
}

func NewPeakForce() *PeakForce {
	return &PeakForce{name: "peak_force"}
}

func (p *PeakForce) Name() string { return p.name }

func (p *PeakForce) Observe(force float64, t float64) {
	if force > p.peak {
		p.peak = force
	}
}

func (p *PeakForce) Value() float64 { return p.peak }

func (p *PeakForce) Reset() { p.peak = 0 }

// MeanForce is the average force over observed samples.
type MeanForce struct {
	name    string
	sum     float64
	samples int
}

func NewMeanForce() *MeanForce {
	return &MeanForce{name: "mean_force"}
}

func (m *MeanForce) Name() string { return m.name }

func (m *MeanForce) Observe(force float64, t float64) {
	m.sum += force
	m.samples++
}

func (m *MeanForce) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanForce) Reset() {
	m.sum = 0
	m.samples = 0
}

// Impulse integrates force over time with the trapezoid rule. The first
// sample is paired with force zero at time zero.
type Impulse struct {
	name      string
	total     float64
	lastForce float64
	lastT     float64
}

func NewImpulse() *Impulse {
	return &Impulse{name: "impulse"}
}

func (i *Impulse) Name() string { return i.name }

func (i *Impulse) Observe(force float64, t float64) {
	i.total += 0.5 * (force + i.lastForce) * (t - i.lastT)
	i.lastForce = force
	i.lastT = t
}

func (i *Impulse) Value() float64 { return i.total }

func (i *Impulse) Reset() {
	i.total = 0
	i.lastForce = 0
	i.lastT = 0
}
