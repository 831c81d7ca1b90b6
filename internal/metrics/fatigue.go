package metrics

// FatigueIndex is the final force as a fraction of the peak force. A muscle
// holding its peak scores 1; one that has failed completely scores 0.
type FatigueIndex struct {
	name string
	peak float64
	last float64
}

func NewFatigueIndex() *FatigueIndex {
	return &FatigueIndex{name: "fatigue_index"}
}

func (f *FatigueIndex) Name() string { return f.name }

func (f *FatigueIndex) Observe(force float64, t float64) {
	if force > f.peak {
		f.peak = force
	}
	f.last = force
}

func (f *FatigueIndex) Value() float64 {
	if f.peak <= 0 {
		return 0
	}
	return f.last / f.peak
}

func (f *FatigueIndex) Reset() {
	f.peak = 0
	f.last = 0
}
