package trajectory_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravflow/internal/ode"
	"github.com/san-kum/gravflow/internal/trajectory"
)

func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

var _ = Describe("Evaluator", func() {
	var (
		ctx  context.Context
		eval *trajectory.Evaluator
	)

	BeforeEach(func() {
		ctx = context.Background()
		eval = trajectory.NewEvaluator()
	})

	Describe("output shape", func() {
		It("is (T, N, 6) for valid inputs", func() {
			masses := []float64{1.0, 0.5, 0.25}
			coords := [][]float64{
				{0, 0, 0, 0, 0, 0},
				{1, 0, 0, 0, 1, 0},
				{0, 2, 0, -0.7, 0, 0},
			}
			times := linspace(0, 0.1, 5)

			out, err := eval.Evaluate(ctx, masses, coords, times)
			Expect(err).NotTo(HaveOccurred())

			tt, n, c := out.Shape()
			Expect(tt).To(Equal(5))
			Expect(n).To(Equal(3))
			Expect(c).To(Equal(6))
			Expect(out.Data()).To(HaveLen(5 * 3 * 6))
		})

		It("returns an empty tensor for zero times", func() {
			masses := []float64{1.0, 0.1}
			coords := [][]float64{
				{0, 0, 0, 0, 0, 0},
				{1, 0, 0, 0, 1, 0},
			}

			out, err := eval.Evaluate(ctx, masses, coords, nil)
			Expect(err).NotTo(HaveOccurred())

			tt, n, c := out.Shape()
			Expect(tt).To(Equal(0))
			Expect(n).To(Equal(2))
			Expect(c).To(Equal(6))
			Expect(out.Data()).To(BeEmpty())
		})
	})

	Describe("a lone primary", func() {
		It("stays at its initial state when at rest", func() {
			masses := []float64{2.5}
			coords := [][]float64{{0.3, -0.7, 2.0, 0, 0, 0}}
			times := []float64{0.0, 1.0, 5.0, 25.0}

			out, err := eval.Evaluate(ctx, masses, coords, times)
			Expect(err).NotTo(HaveOccurred())

			for ti := range times {
				state := out.Body(ti, 0)
				for k := 0; k < 6; k++ {
					Expect(state[k]).To(Equal(coords[0][k]),
						"time %d component %d", ti, k)
				}
			}
		})

		It("drifts at constant velocity when moving", func() {
			masses := []float64{1.0}
			coords := [][]float64{{0, 0, 0, 0.5, 0, -0.25}}
			times := []float64{2.0}

			out, err := eval.Evaluate(ctx, masses, coords, times)
			Expect(err).NotTo(HaveOccurred())

			state := out.Body(0, 0)
			Expect(state[0]).To(BeNumerically("~", 1.0, 1e-9))
			Expect(state[2]).To(BeNumerically("~", -0.5, 1e-9))
			Expect(state[3]).To(Equal(0.5))
			Expect(state[5]).To(Equal(-0.25))
		})
	})

	Describe("a two-body circular orbit", func() {
		// G = masses[0]² = 1, sim masses 1 and q, so the effective
		// two-body parameter is mu = 1 + q.
		const q = 3e-6

		var (
			masses []float64
			coords [][]float64
			period float64
		)

		BeforeEach(func() {
			mu := 1.0 + q
			masses = []float64{1.0, q}
			coords = [][]float64{
				{0, 0, 0, 0, 0, 0},
				{1, 0, 0, 0, math.Sqrt(mu), 0},
			}
			period = 2 * math.Pi / math.Sqrt(mu)
		})

		It("returns the secondary to its start after one period", func() {
			times := linspace(0, period, 9)

			out, err := eval.Evaluate(ctx, masses, coords, times)
			Expect(err).NotTo(HaveOccurred())

			first := out.Body(0, 0)
			Expect(first[0]).To(Equal(0.0))

			start := out.Body(0, 1)
			end := out.Body(len(times)-1, 1)
			for k := 0; k < 3; k++ {
				Expect(end[k]).To(BeNumerically("~", start[k], 1e-3),
					"position component %d", k)
			}
		})
	})

	Describe("particle ordering", func() {
		It("preserves index correspondence under secondary permutation", func() {
			masses := []float64{1.0, 0.4, 0.2}
			coords := [][]float64{
				{0, 0, 0, 0, 0, 0},
				{1.5, 0, 0, 0, 0.8, 0},
				{0, -2.0, 0.5, 0.6, 0, 0},
			}
			times := linspace(0, 0.5, 3)

			out, err := eval.Evaluate(ctx, masses, coords, times)
			Expect(err).NotTo(HaveOccurred())

			// Swap the two secondaries; the primary defines the unit
			// convention and must stay at index 0.
			swapMasses := []float64{masses[0], masses[2], masses[1]}
			swapCoords := [][]float64{coords[0], coords[2], coords[1]}

			swapped, err := eval.Evaluate(ctx, swapMasses, swapCoords, times)
			Expect(err).NotTo(HaveOccurred())

			// Summation order in the pairwise force loop changes with the
			// permutation, so allow roundoff-level differences.
			pairs := [][2]int{{1, 2}, {2, 1}, {0, 0}}
			for ti := range times {
				for _, pair := range pairs {
					got := swapped.Body(ti, pair[0])
					want := out.Body(ti, pair[1])
					for k := 0; k < 6; k++ {
						Expect(got[k]).To(BeNumerically("~", want[k], 1e-12),
							"time %d body %d component %d", ti, pair[0], k)
					}
				}
			}
		})
	})

	Describe("determinism", func() {
		It("produces identical tensors for identical inputs", func() {
			masses := []float64{1.0, 0.3, 0.1}
			coords := [][]float64{
				{0, 0, 0, 0, 0, 0},
				{1, 0, 0, 0, 1.1, 0},
				{-0.5, 1.2, 0, 0, -0.9, 0.1},
			}
			times := linspace(0, 1.0, 7)

			a, err := eval.Evaluate(ctx, masses, coords, times)
			Expect(err).NotTo(HaveOccurred())

			b, err := eval.Evaluate(ctx, masses, coords, times)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.Data()).To(Equal(a.Data()))
		})
	})

	Describe("non-monotonic times", func() {
		It("integrates backward to earlier entries", func() {
			masses := []float64{1.0, 1e-3}
			coords := [][]float64{
				{0, 0, 0, 0, 0, 0},
				{1, 0, 0, 0, 1.0, 0},
			}

			forward, err := eval.Evaluate(ctx, masses, coords, []float64{0.2})
			Expect(err).NotTo(HaveOccurred())

			roundabout, err := eval.Evaluate(ctx, masses, coords, []float64{0.5, 0.2})
			Expect(err).NotTo(HaveOccurred())

			want := forward.Body(0, 1)
			got := roundabout.Body(1, 1)
			for k := 0; k < 6; k++ {
				Expect(got[k]).To(BeNumerically("~", want[k], 1e-6),
					"component %d", k)
			}
		})
	})

	Describe("validation", func() {
		coords2 := [][]float64{
			{0, 0, 0, 0, 0, 0},
			{1, 0, 0, 0, 1, 0},
		}

		It("rejects empty masses", func() {
			_, err := eval.Evaluate(ctx, nil, nil, []float64{1.0})
			Expect(err).To(MatchError(trajectory.ErrNoBodies))
		})

		It("rejects mismatched body counts", func() {
			_, err := eval.Evaluate(ctx, []float64{1.0}, coords2, []float64{1.0})
			Expect(err).To(MatchError(trajectory.ErrShapeMismatch))
		})

		It("rejects short coordinate rows", func() {
			bad := [][]float64{{0, 0, 0}}
			_, err := eval.Evaluate(ctx, []float64{1.0}, bad, []float64{1.0})
			Expect(err).To(MatchError(trajectory.ErrBadCoords))
		})

		It("rejects a zero primary mass", func() {
			_, err := eval.Evaluate(ctx, []float64{0.0, 1.0}, coords2, []float64{1.0})
			Expect(err).To(MatchError(trajectory.ErrBadPrimary))
		})

		It("rejects a negative primary mass", func() {
			_, err := eval.Evaluate(ctx, []float64{-1.0, 1.0}, coords2, []float64{1.0})
			Expect(err).To(MatchError(trajectory.ErrBadPrimary))
		})
	})

	Describe("state checks", func() {
		// Two coincident bodies with zero softening produce non-finite
		// accelerations on the first substep.
		masses := []float64{1.0, 1.0}
		coincident := [][]float64{
			{0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0},
		}

		It("fails on a non-finite state when enabled", func() {
			_, err := eval.Evaluate(ctx, masses, coincident, []float64{0.01})
			Expect(err).To(MatchError(ode.ErrInvalidState))
		})

		It("returns the raw result when disabled", func() {
			eval.Validate = false

			out, err := eval.Evaluate(ctx, masses, coincident, []float64{0.01})
			Expect(err).NotTo(HaveOccurred())

			state := out.Body(0, 0)
			Expect(math.IsNaN(state[0]) || math.IsInf(state[0], 0)).To(BeTrue())
		})
	})

	Describe("cancellation", func() {
		It("propagates a canceled context", func() {
			canceled, cancel := context.WithCancel(context.Background())
			cancel()

			masses := []float64{1.0, 0.1}
			coords := [][]float64{
				{0, 0, 0, 0, 0, 0},
				{1, 0, 0, 0, 1, 0},
			}

			_, err := eval.Evaluate(canceled, masses, coords, []float64{10.0})
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})

var _ = Describe("SimulationMasses", func() {
	It("rescales to the engine convention", func() {
		simMasses, g, err := trajectory.SimulationMasses([]float64{2.0, 1.0, 0.5})
		Expect(err).NotTo(HaveOccurred())

		Expect(g).To(Equal(4.0))
		Expect(simMasses).To(Equal([]float64{1.0, 0.5, 0.25}))
	})

	It("rejects a non-finite primary", func() {
		_, _, err := trajectory.SimulationMasses([]float64{math.Inf(1)})
		Expect(err).To(MatchError(trajectory.ErrBadPrimary))
	})
})
