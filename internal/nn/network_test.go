package nn

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/tinynet/internal/tensor"
)

var (
	referenceWIH = [][]float64{
		{-0.59306787, 0.25274925, -0.32602831},
		{-0.16685239, 0.22542431, -0.36808796},
		{0.81883787, 1.29124618, -0.6584239},
	}
	referenceWHO = [][]float64{
		{0.80042512, 0.35423876, 0.16241759},
		{-1.52660991, -0.82271924, 0.23120044},
		{0.66190966, 0.31868365, 0.39380777},
	}
	referenceSample = []float64{1.0, 0.5, -1.5}
)

const goldenTol = 1e-12

func newReferenceNetwork(t *testing.T) *Network {
	t.Helper()
	net, err := New(3, 3, 3, 0.3, tensor.MustFromRows(referenceWIH), tensor.MustFromRows(referenceWHO))
	require.NoError(t, err)
	return net
}

func assertRowsInDelta(t *testing.T, want [][]float64, got *tensor.Matrix) {
	t.Helper()
	rows := got.ToRows()
	require.Len(t, rows, len(want))
	for i := range want {
		assert.Truef(t, floats.EqualApprox(want[i], rows[i], goldenTol),
			"row %d: want %v, got %v", i, want[i], rows[i])
	}
}

// TestReferenceScenario pins the weights after one training step on the
// reference 3-3-3 network.
func TestReferenceScenario(t *testing.T) {
	net := newReferenceNetwork(t)

	before, err := net.Query(referenceSample)
	require.NoError(t, err)
	assert.True(t, floats.EqualApprox(
		[]float64{0.6845058050365244, 0.2552727453107218, 0.7100145514778602}, before, goldenTol),
		"query before train: %v", before)

	require.NoError(t, net.Train(referenceSample, referenceSample))

	assertRowsInDelta(t, [][]float64{
		{-0.7118458038870541, 0.19336028305647296, -0.14786140916941898},
		{-0.2228490895089983, 0.19742596024550085, -0.28409291073650256},
		{0.8021393498632621, 1.282896919931631, -0.633376119794893},
	}, net.WeightsInputHidden())

	assertRowsInDelta(t, [][]float64{
		{0.8107593255729884, 0.3669521867136844, 0.1812370080575016},
		{-1.5195532165635004, -0.8140378997448409, 0.24405124531320493},
		{0.5928927035236684, 0.23377707329546324, 0.26812235104728965},
	}, net.WeightsHiddenOutput())

	after, err := net.Query(referenceSample)
	require.NoError(t, err)
	assert.True(t, floats.EqualApprox(
		[]float64{0.6690091572765791, 0.2980463330649636, 0.6499859426605623}, after, goldenTol),
		"query after train: %v", after)

	assert.False(t, floats.Equal(before, after))
	for _, out := range [][]float64{before, after} {
		for _, v := range out {
			assert.Greater(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestQuery_Deterministic(t *testing.T) {
	net := newReferenceNetwork(t)

	first, err := net.Query(referenceSample)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := net.Query(referenceSample)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestQuery_DoesNotMutate(t *testing.T) {
	net := newReferenceNetwork(t)
	_, err := net.Query(referenceSample)
	require.NoError(t, err)

	assert.True(t, net.WeightsInputHidden().Equal(tensor.MustFromRows(referenceWIH)))
	assert.True(t, net.WeightsHiddenOutput().Equal(tensor.MustFromRows(referenceWHO)))
}

func TestQuery_OutputShape(t *testing.T) {
	wih, err := NewNormal(7).Init(tensor.Shape{Rows: 5, Cols: 4})
	require.NoError(t, err)
	who, err := NewNormal(8).Init(tensor.Shape{Rows: 2, Cols: 5})
	require.NoError(t, err)

	net, err := New(4, 5, 2, 0.1, wih, who)
	require.NoError(t, err)

	out, err := net.Query([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

// TestTrain_ZeroErrorIsNoop trains with targets equal to the current
// output; the output error is exactly zero so no weight may move.
func TestTrain_ZeroErrorIsNoop(t *testing.T) {
	net := newReferenceNetwork(t)

	targets, err := net.Query(referenceSample)
	require.NoError(t, err)

	wih := net.WeightsInputHidden()
	who := net.WeightsHiddenOutput()

	require.NoError(t, net.Train(referenceSample, targets))

	assert.True(t, wih.Equal(net.WeightsInputHidden()))
	assert.True(t, who.Equal(net.WeightsHiddenOutput()))
}

func TestTrain_PreservesShapes(t *testing.T) {
	wih, err := NewNormal(1).Init(tensor.Shape{Rows: 4, Cols: 2})
	require.NoError(t, err)
	who, err := NewNormal(2).Init(tensor.Shape{Rows: 3, Cols: 4})
	require.NoError(t, err)

	net, err := New(2, 4, 3, 0.5, wih, who)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, net.Train([]float64{0.2, -0.7}, []float64{0.1, 0.9, 0.5}))
	}

	assert.Equal(t, tensor.Shape{Rows: 4, Cols: 2}, net.WeightsInputHidden().Shape())
	assert.Equal(t, tensor.Shape{Rows: 3, Cols: 4}, net.WeightsHiddenOutput().Shape())
}

func TestTrain_ReducesError(t *testing.T) {
	net := newReferenceNetwork(t)
	targets := []float64{0.9, 0.1, 0.5}

	sse := func() float64 {
		out, err := net.Query(referenceSample)
		require.NoError(t, err)
		var sum float64
		for i := range out {
			d := targets[i] - out[i]
			sum += d * d
		}
		return sum
	}

	start := sse()
	for i := 0; i < 50; i++ {
		require.NoError(t, net.Train(referenceSample, targets))
	}
	assert.Less(t, sse(), start)
}

// TestTrain_MatchesNumericalGradient checks that one step moves every
// weight by -lr * dL/dw for L = ½‖t − y‖², with the derivative taken by
// central finite differences.
func TestTrain_MatchesNumericalGradient(t *testing.T) {
	const lr = 0.3
	targets := []float64{0.2, 0.9, 0.4}

	flat := append(tensor.MustFromRows(referenceWIH).Data(), tensor.MustFromRows(referenceWHO).Data()...)

	loss := func(theta []float64) float64 {
		wih, err := tensor.FromSlice(theta[:9], tensor.Shape{Rows: 3, Cols: 3})
		require.NoError(t, err)
		who, err := tensor.FromSlice(theta[9:], tensor.Shape{Rows: 3, Cols: 3})
		require.NoError(t, err)
		net, err := New(3, 3, 3, lr, wih, who)
		require.NoError(t, err)

		out, err := net.Query(referenceSample)
		require.NoError(t, err)
		var sum float64
		for i := range out {
			d := targets[i] - out[i]
			sum += d * d
		}
		return 0.5 * sum
	}

	grad := fd.Gradient(nil, loss, flat, &fd.Settings{Formula: fd.Central, Step: 1e-6})

	net := newReferenceNetwork(t)
	require.NoError(t, net.Train(referenceSample, targets))
	updated := append(net.WeightsInputHidden().Data(), net.WeightsHiddenOutput().Data()...)

	for i := range flat {
		step := (updated[i] - flat[i]) / lr
		assert.InDeltaf(t, -grad[i], step, 1e-7, "weight %d", i)
	}
}

func TestNew_ShapeMismatch(t *testing.T) {
	wih := tensor.MustFromRows([][]float64{{1, 2, 3}, {4, 5, 6}}) // 2×3
	who := tensor.MustFromRows(referenceWHO)

	_, err := New(3, 3, 3, 0.3, wih, who)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), WeightsInputHiddenName)

	_, err = New(3, 3, 3, 0.3, tensor.MustFromRows(referenceWIH), wih)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), WeightsHiddenOutputName)

	_, err = New(3, 3, 3, 0.3, nil, who)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNew_InvalidSizes(t *testing.T) {
	wih := tensor.MustFromRows(referenceWIH)
	who := tensor.MustFromRows(referenceWHO)

	for _, sizes := range [][3]int{{0, 3, 3}, {3, -1, 3}, {3, 3, 0}} {
		_, err := New(sizes[0], sizes[1], sizes[2], 0.3, wih, who)
		assert.ErrorIs(t, err, ErrShapeMismatch, "sizes %v", sizes)
	}
}

func TestNew_CopiesWeights(t *testing.T) {
	wih := tensor.MustFromRows(referenceWIH)
	who := tensor.MustFromRows(referenceWHO)

	net, err := New(3, 3, 3, 0.3, wih, who)
	require.NoError(t, err)
	require.NoError(t, net.Train(referenceSample, referenceSample))

	// Caller's matrices are untouched by training.
	assert.True(t, wih.Equal(tensor.MustFromRows(referenceWIH)))
	assert.True(t, who.Equal(tensor.MustFromRows(referenceWHO)))

	// Returned weights are copies.
	snapshot := net.WeightsHiddenOutput()
	snapshot.AddScaled(1, snapshot)
	assert.False(t, snapshot.Equal(net.WeightsHiddenOutput()))
}

func TestQuery_DimensionError(t *testing.T) {
	net := newReferenceNetwork(t)

	_, err := net.Query([]float64{1, 2})
	assert.ErrorIs(t, err, ErrDimension)

	_, err = net.Query(nil)
	assert.ErrorIs(t, err, ErrDimension)
}

func TestTrain_DimensionErrorLeavesWeights(t *testing.T) {
	net := newReferenceNetwork(t)

	err := net.Train([]float64{1, 2}, referenceSample)
	assert.ErrorIs(t, err, ErrDimension)

	err = net.Train(referenceSample, []float64{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrDimension)

	assert.True(t, net.WeightsInputHidden().Equal(tensor.MustFromRows(referenceWIH)))
	assert.True(t, net.WeightsHiddenOutput().Equal(tensor.MustFromRows(referenceWHO)))
}

// identity is a linear activation used to check that Query and Train go
// through the Activation capability rather than a hard-coded sigmoid.
type identity struct{}

func (identity) Forward(x float64) float64 { return x }
func (identity) DerivativeFromOutput(_ float64) float64 { return 1 }

func TestCustomActivation(t *testing.T) {
	net, err := NewFromConfig(Config{
		InputSize:    2,
		HiddenSize:   2,
		OutputSize:   1,
		LearningRate: 0.5,
		InputHidden:  Literal(tensor.MustFromRows([][]float64{{1, 0}, {0, 1}})),
		HiddenOutput: Literal(tensor.MustFromRows([][]float64{{1, 1}})),
		Activation:   identity{},
	})
	require.NoError(t, err)

	out, err := net.Query([]float64{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, out)

	// error = 1 - 5 = -4
	// who += 0.5 * -4 * [2, 3]       -> [-3, -5]
	// hiddenErr = [1, 1]ᵀ * -4        -> [-4, -4]
	// wih += 0.5 * [-4, -4]ᵀ [2, 3]   -> [[-3, -6], [-4, -5]]
	require.NoError(t, net.Train([]float64{2, 3}, []float64{1}))
	assert.Equal(t, [][]float64{{-3, -5}}, net.WeightsHiddenOutput().ToRows())
	assert.Equal(t, [][]float64{{-3, -6}, {-4, -5}}, net.WeightsInputHidden().ToRows())
}

func TestNewFromConfig_NormalInit(t *testing.T) {
	build := func(seed uint64) *Network {
		initializer := NewNormal(seed)
		net, err := NewFromConfig(Config{
			InputSize:    4,
			HiddenSize:   6,
			OutputSize:   2,
			LearningRate: 0.1,
			InputHidden:  initializer,
			HiddenOutput: initializer,
		})
		require.NoError(t, err)
		return net
	}

	a, b, c := build(42), build(42), build(43)
	assert.True(t, a.WeightsInputHidden().Equal(b.WeightsInputHidden()))
	assert.True(t, a.WeightsHiddenOutput().Equal(b.WeightsHiddenOutput()))
	assert.False(t, a.WeightsInputHidden().Equal(c.WeightsInputHidden()))
	assert.Equal(t, tensor.Shape{Rows: 6, Cols: 4}, a.WeightsInputHidden().Shape())
	assert.Equal(t, tensor.Shape{Rows: 2, Cols: 6}, a.WeightsHiddenOutput().Shape())
}

func TestNewFromConfig_MissingInitializer(t *testing.T) {
	_, err := NewFromConfig(Config{InputSize: 1, HiddenSize: 1, OutputSize: 1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNormal_DefaultStd(t *testing.T) {
	w, err := NewNormal(3).Init(tensor.Shape{Rows: 100, Cols: 100})
	require.NoError(t, err)

	data := w.Data()
	mean := floats.Sum(data) / float64(len(data))
	var variance float64
	for _, v := range data {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(data)))

	assert.InDelta(t, 0.0, mean, 0.01)
	assert.InDelta(t, 0.1, std, 0.005) // 1/sqrt(100)
}

func TestNormal_InvalidParams(t *testing.T) {
	_, err := (&Normal{Std: -1}).Init(tensor.Shape{Rows: 2, Cols: 2})
	assert.Error(t, err)

	_, err = NewNormal(1).Init(tensor.Shape{Rows: 0, Cols: 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestParameters(t *testing.T) {
	net := newReferenceNetwork(t)
	params := net.Parameters()

	require.Len(t, params, 2)
	assert.Equal(t, WeightsInputHiddenName, params[0].Name())
	assert.Equal(t, WeightsHiddenOutputName, params[1].Name())
	assert.Equal(t, tensor.Shape{Rows: 3, Cols: 3}, params[0].Shape())

	params[0].Update(1, params[0].Tensor())
	assert.True(t, net.WeightsInputHidden().Equal(tensor.MustFromRows(referenceWIH)))
}

func TestAccessors(t *testing.T) {
	net := newReferenceNetwork(t)
	assert.Equal(t, 3, net.InputSize())
	assert.Equal(t, 3, net.HiddenSize())
	assert.Equal(t, 3, net.OutputSize())
	assert.Equal(t, 0.3, net.LearningRate())
}

// TestConcurrentQueryAndTrain is meant to run under -race.
func TestConcurrentQueryAndTrain(t *testing.T) {
	net := newReferenceNetwork(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if g%2 == 0 {
					assert.NoError(t, net.Train(referenceSample, []float64{0.1, 0.2, 0.3}))
					continue
				}
				out, err := net.Query(referenceSample)
				assert.NoError(t, err)
				assert.Len(t, out, 3)
			}
		}(g)
	}
	wg.Wait()
}
