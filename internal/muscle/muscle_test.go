package muscle_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/musclesim/internal/fibers"
	"github.com/san-kum/musclesim/internal/muscle"
	"github.com/san-kum/musclesim/internal/pools"
)

// spyPool doubles its input and records every call.
type spyPool struct {
	n      int
	err    error
	inputs []muscle.Excitation
	dts    []float64
	out    []muscle.Activation
}

func (p *spyPool) MotorUnitCount() int { return p.n }

func (p *spyPool) Step(in muscle.Excitation, dt float64) (muscle.Activation, error) {
	p.inputs = append(p.inputs, in.Clone())
	p.dts = append(p.dts, dt)
	if p.err != nil {
		return nil, p.err
	}
	rates := make(muscle.Activation, len(in))
	for i, v := range in {
		rates[i] = 2 * v
	}
	p.out = append(p.out, rates.Clone())
	return rates, nil
}

// spyFibers sums its input.
type spyFibers struct {
	n       int
	err     error
	current float64
	rates   []muscle.Activation
	dts     []float64
}

func (f *spyFibers) MotorUnitCount() int { return f.n }

func (f *spyFibers) Step(rates muscle.Activation, dt float64) (float64, error) {
	f.rates = append(f.rates, rates.Clone())
	f.dts = append(f.dts, dt)
	if f.err != nil {
		return 0, f.err
	}
	sum := 0.0
	for _, r := range rates {
		sum += r
	}
	f.current = sum
	return sum, nil
}

func (f *spyFibers) CurrentForces() float64 { return f.current }

var _ = Describe("Muscle", func() {
	Describe("construction", func() {
		DescribeTable("accepts collaborators with equal unit counts",
			func(n int) {
				m, err := muscle.New(&spyPool{n: n}, &spyFibers{n: n})
				Expect(err).NotTo(HaveOccurred())
				Expect(m.MotorUnitCount()).To(Equal(n))
			},
			Entry("one unit", 1),
			Entry("small pool", 5),
			Entry("typical pool", 60),
			Entry("large pool", 1011),
		)

		It("rejects mismatched unit counts", func() {
			m, err := muscle.New(&spyPool{n: 60}, &spyFibers{n: 59})
			Expect(m).To(BeNil())
			Expect(err).To(MatchError(muscle.ErrUnitCountMismatch))

			var cfgErr *muscle.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.PoolUnits).To(Equal(60))
			Expect(cfgErr.FiberUnits).To(Equal(59))
			Expect(err.Error()).To(ContainSubstring("pool=60, fibers=59"))
		})

		It("rejects nil collaborators", func() {
			_, err := muscle.New(nil, &spyFibers{n: 1})
			Expect(err).To(MatchError(muscle.ErrMissingModel))

			_, err = muscle.New(&spyPool{n: 1}, nil)
			Expect(err).To(MatchError(muscle.ErrMissingModel))
		})

		It("rejects real models built with different counts", func() {
			pool, err := pools.NewPotvinFuglevand2017(pools.DefaultParams(60))
			Expect(err).NotTo(HaveOccurred())
			fib, err := fibers.NewPotvinFuglevand2017(fibers.DefaultParams(120))
			Expect(err).NotTo(HaveOccurred())

			_, err = muscle.New(pool, fib)
			var cfgErr *muscle.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
		})
	})

	Describe("stepping", func() {
		var (
			pool *spyPool
			fib  *spyFibers
			m    *muscle.Muscle
		)

		BeforeEach(func() {
			pool = &spyPool{n: 4}
			fib = &spyFibers{n: 4}
			var err error
			m, err = muscle.New(pool, fib)
			Expect(err).NotTo(HaveOccurred())
		})

		It("broadcasts a scalar to every unit", func() {
			_, err := m.Step(muscle.Scalar(3), 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(pool.inputs).To(HaveLen(1))
			Expect(pool.inputs[0]).To(Equal(muscle.Excitation{3, 3, 3, 3}))
		})

		It("treats a scalar as shorthand for a uniform vector", func() {
			other := &spyPool{n: 4}
			otherFib := &spyFibers{n: 4}
			m2, err := muscle.New(other, otherFib)
			Expect(err).NotTo(HaveOccurred())

			f1, err := m.Step(muscle.Scalar(7.5), 0.01)
			Expect(err).NotTo(HaveOccurred())
			f2, err := m2.Step(muscle.PerUnit([]float64{7.5, 7.5, 7.5, 7.5}), 0.01)
			Expect(err).NotTo(HaveOccurred())

			Expect(pool.out).To(Equal(other.out))
			Expect(f1).To(Equal(f2))
		})

		It("passes per-unit input through unchanged", func() {
			_, err := m.Step(muscle.PerUnit([]float64{1, 2, 3, 4}), 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(pool.inputs[0]).To(Equal(muscle.Excitation{1, 2, 3, 4}))
		})

		It("feeds pool output to the fibers and returns their force", func() {
			force, err := m.Step(muscle.PerUnit([]float64{1, 2, 3, 4}), 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(fib.rates[0]).To(Equal(muscle.Activation{2, 4, 6, 8}))
			Expect(force).To(Equal(20.0))
		})

		It("passes the step size to both collaborators", func() {
			_, err := m.Step(muscle.Scalar(1), 0.125)
			Expect(err).NotTo(HaveOccurred())
			Expect(pool.dts).To(Equal([]float64{0.125}))
			Expect(fib.dts).To(Equal([]float64{0.125}))
		})

		It("keeps CurrentForces equal to the last returned force", func() {
			Expect(m.CurrentForces()).To(BeZero())
			for _, v := range []float64{1, 5, 2} {
				force, err := m.Step(muscle.Scalar(v), 0.02)
				Expect(err).NotTo(HaveOccurred())
				Expect(m.CurrentForces()).To(Equal(force))
			}
		})

		It("does not report unit forces without the capability", func() {
			Expect(m.UnitForces()).To(BeNil())
		})

		It("returns pool errors unchanged and skips the fibers", func() {
			boom := errors.New("pool exploded")
			pool.err = boom

			_, err := m.Step(muscle.Scalar(1), 0.02)
			Expect(err).To(BeIdenticalTo(boom))
			Expect(fib.rates).To(BeEmpty())
		})

		It("returns fiber errors unchanged", func() {
			boom := errors.New("fibers exploded")
			fib.err = boom

			_, err := m.Step(muscle.Scalar(1), 0.02)
			Expect(err).To(BeIdenticalTo(boom))
		})
	})

	Describe("with Potvin & Fuglevand models", func() {
		var m *muscle.Muscle

		BeforeEach(func() {
			pool, err := pools.NewPotvinFuglevand2017(pools.DefaultParams(60))
			Expect(err).NotTo(HaveOccurred())
			fib, err := fibers.NewPotvinFuglevand2017(fibers.DefaultParams(60))
			Expect(err).NotTo(HaveOccurred())
			m, err = muscle.New(pool, fib)
			Expect(err).NotTo(HaveOccurred())
		})

		It("produces force under excitation", func() {
			force, err := m.Step(muscle.Scalar(32.0), 1/50.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(force).To(BeNumerically(">", 0))
			Expect(m.CurrentForces()).To(Equal(force))
			Expect(m.UnitForces()).To(HaveLen(60))
		})

		It("fails on an empty excitation sequence", func() {
			_, err := m.Step(muscle.PerUnit(nil), 1/50.0)
			Expect(err).To(MatchError(muscle.ErrDimensionMismatch))
			Expect(m.CurrentForces()).To(BeZero())
		})

		It("fails on a NaN excitation", func() {
			_, err := m.Step(muscle.Scalar(math.NaN()), 1/50.0)
			Expect(err).To(MatchError(muscle.ErrInvalidExcitation))
			Expect(m.CurrentForces()).To(BeZero())
		})

		It("fails on a short excitation sequence", func() {
			_, err := m.Step(muscle.PerUnit(make([]float64, 59)), 1/50.0)
			Expect(err).To(MatchError(muscle.ErrDimensionMismatch))
		})

		It("fails on the zero Input", func() {
			_, err := m.Step(muscle.Input{}, 1/50.0)
			Expect(err).To(MatchError(muscle.ErrDimensionMismatch))
		})
	})
})
