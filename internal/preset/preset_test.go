package preset_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/musclesim/internal/config"
	"github.com/san-kum/musclesim/internal/muscle"
	"github.com/san-kum/musclesim/internal/preset"
)

func trace(m *muscle.Muscle, inputs []float64) []float64 {
	forces := make([]float64, 0, len(inputs))
	for _, e := range inputs {
		f, err := m.Step(muscle.Scalar(e), 1/50.0)
		Expect(err).NotTo(HaveOccurred())
		forces = append(forces, f)
	}
	return forces
}

var _ = Describe("MotorUnitCount", func() {
	It("truncates the documented derivation", func() {
		n, err := preset.MotorUnitCount(500, 0.028)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int(math.Floor(500 / (0.028 * 17.66)))))
		Expect(n).To(Equal(1011))
	})

	It("sizes the default standard muscle", func() {
		n, err := preset.DefaultStandardConfig().MotorUnitCount()
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(121))
	})

	DescribeTable("rejects unusable inputs",
		func(maxForce, factor float64) {
			_, err := preset.MotorUnitCount(maxForce, factor)
			Expect(err).To(MatchError(preset.ErrInvalidParameter))
		},
		Entry("zero force", 0.0, 0.028),
		Entry("negative force", -10.0, 0.028),
		Entry("zero factor", 60.0, 0.0),
		Entry("NaN factor", 60.0, math.NaN()),
		Entry("infinite force", math.Inf(1), 0.028),
		Entry("too weak for one unit", 0.1, 0.028),
	)
})

var _ = Describe("NewStandard", func() {
	It("defaults to peripheral fatigue only", func() {
		cfg := preset.DefaultStandardConfig()
		Expect(cfg.ApplyCentralFatigue).To(BeFalse())
		Expect(cfg.ApplyPeripheralFatigue).To(BeTrue())
		Expect(cfg.PreCalcFiringRates).To(BeFalse())
		Expect(cfg.MaxForce).To(Equal(60.0))
		Expect(cfg.ForceConversionFactor).To(Equal(0.028))
	})

	It("builds a muscle with the derived unit count", func() {
		cfg := preset.DefaultStandardConfig()
		cfg.MaxForce = 500
		m, err := preset.NewStandard(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.MotorUnitCount()).To(Equal(1011))
	})

	It("produces force in newtons near its rated capacity", func() {
		m, err := preset.NewStandard(preset.DefaultStandardConfig())
		Expect(err).NotTo(HaveOccurred())

		force, err := m.Step(muscle.Scalar(67), 1/50.0)
		Expect(err).NotTo(HaveOccurred())
		Expect(force).To(BeNumerically("~", 60, 15))
	})

	It("propagates derivation errors", func() {
		cfg := preset.DefaultStandardConfig()
		cfg.ForceConversionFactor = 0
		_, err := preset.NewStandard(cfg)
		Expect(err).To(MatchError(preset.ErrInvalidParameter))
	})
})

var _ = Describe("NewPotvinFuglevand", func() {
	It("defaults to both fatigue types", func() {
		cfg := preset.DefaultPotvinFuglevandConfig(120)
		Expect(cfg.MotorUnitCount).To(Equal(120))
		Expect(cfg.ApplyCentralFatigue).To(BeTrue())
		Expect(cfg.ApplyPeripheralFatigue).To(BeTrue())
		Expect(cfg.PreCalcFiringRates).To(BeFalse())
	})

	It("builds a muscle with the requested unit count", func() {
		m, err := preset.NewPotvinFuglevand(preset.DefaultPotvinFuglevandConfig(60))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.MotorUnitCount()).To(Equal(60))
	})

	It("rejects a zero unit count", func() {
		_, err := preset.NewPotvinFuglevand(preset.DefaultPotvinFuglevandConfig(0))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("determinism", func() {
	inputs := []float64{0, 10, 20, 30, 40, 50, 60, 67, 67, 67, 30, 0}

	It("reproduces force traces across identical potvin_fuglevand muscles", func() {
		a, err := preset.NewPotvinFuglevand(preset.DefaultPotvinFuglevandConfig(60))
		Expect(err).NotTo(HaveOccurred())
		b, err := preset.NewPotvinFuglevand(preset.DefaultPotvinFuglevandConfig(60))
		Expect(err).NotTo(HaveOccurred())

		Expect(trace(a, inputs)).To(Equal(trace(b, inputs)))
	})

	It("reproduces force traces across identical standard muscles", func() {
		cfg := preset.DefaultStandardConfig()
		cfg.PreCalcFiringRates = true
		a, err := preset.NewStandard(cfg)
		Expect(err).NotTo(HaveOccurred())
		b, err := preset.NewStandard(cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(trace(a, inputs)).To(Equal(trace(b, inputs)))
	})
})

var _ = Describe("Registry", func() {
	var r *preset.Registry

	BeforeEach(func() {
		r = preset.NewRegistry()
	})

	It("lists the built-in kinds", func() {
		Expect(r.List()).To(Equal([]string{config.KindPotvinFuglevand, config.KindStandard}))
	})

	It("builds every named config preset", func() {
		for kind := range config.Presets {
			for _, name := range config.ListPresets(kind) {
				m, err := r.Build(config.GetPreset(kind, name))
				Expect(err).NotTo(HaveOccurred(), "%s/%s", kind, name)
				Expect(m.MotorUnitCount()).To(BeNumerically(">", 0))
			}
		}
	})

	It("builds the default config", func() {
		m, err := r.Build(config.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(m.MotorUnitCount()).To(Equal(121))
	})

	It("rejects unknown kinds", func() {
		cfg := config.DefaultConfig()
		cfg.Preset = "hydraulic"
		_, err := r.Build(cfg)
		Expect(err).To(MatchError(ContainSubstring("unknown preset kind")))
	})

	It("rejects invalid configs", func() {
		cfg := config.DefaultConfig()
		cfg.StepSize = 0
		_, err := r.Build(cfg)
		Expect(err).To(MatchError(config.ErrInvalid))
	})

	It("accepts custom factories", func() {
		r.Register("tiny", func(*config.Config) (*muscle.Muscle, error) {
			return preset.NewPotvinFuglevand(preset.DefaultPotvinFuglevandConfig(3))
		})
		cfg := config.DefaultConfig()
		cfg.Preset = "tiny"
		m, err := r.Build(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.MotorUnitCount()).To(Equal(3))
	})
})
