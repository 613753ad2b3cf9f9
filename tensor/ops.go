package tensor

import (
	"fmt"
	"math"
)

// DefaultEqualityEpsilon is the tolerance Eq applies when none is given.
const DefaultEqualityEpsilon = 1e-5

// Add performs element-wise addition with broadcasting.
func (t *Tensor) Add(other *Tensor) (*Tensor, error) {
	return t.binaryOp("add", other, func(a, b float64) float64 { return a + b })
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) {
	return t.binaryOp("sub", other, func(a, b float64) float64 { return a - b })
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor) Mul(other *Tensor) (*Tensor, error) {
	return t.binaryOp("mul", other, func(a, b float64) float64 { return a * b })
}

// Div performs element-wise division with broadcasting. Division by zero
// follows IEEE-754: the result holds Inf or NaN, no error is reported.
func (t *Tensor) Div(other *Tensor) (*Tensor, error) {
	return t.binaryOp("div", other, func(a, b float64) float64 { return a / b })
}

// binaryOp applies fn element-wise over the broadcast of both operands,
// writing into a fresh tensor.
func (t *Tensor) binaryOp(op string, other *Tensor, fn func(a, b float64) float64) (*Tensor, error) {
	outShape, needsBroadcast, err := BroadcastShapes(t.shape, other.shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := newDense(outShape)
	out := result.Data()
	a := t.Data()
	b := other.Data()

	if !needsBroadcast && len(t.shape) == len(other.shape) {
		for i := range out {
			out[i] = fn(a[i], b[i])
		}
		return result, nil
	}

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(t.shape, outShape)
	bStrides := broadcastStrides(other.shape, outShape)
	for i := range out {
		out[i] = fn(a[flatIndex(i, outStrides, aStrides)], b[flatIndex(i, outStrides, bStrides)])
	}
	return result, nil
}

// flatIndex translates an output flat offset into a source flat offset
// using broadcast-adjusted source strides.
func flatIndex(outIdx int, outStrides, inStrides []int) int {
	flat := 0
	for i, stride := range outStrides {
		coord := outIdx / stride
		outIdx %= stride
		flat += coord * inStrides[i]
	}
	return flat
}

// AddAssign adds other into t in place. The other tensor must broadcast to
// t's shape exactly; the receiver's buffer is mutated, which is visible
// through every alias of it.
func (t *Tensor) AddAssign(other *Tensor) error {
	return t.assignOp("add assign", other, func(a, b float64) float64 { return a + b })
}

// SubAssign subtracts other from t in place.
func (t *Tensor) SubAssign(other *Tensor) error {
	return t.assignOp("sub assign", other, func(a, b float64) float64 { return a - b })
}

// MulAssign multiplies t by other in place.
func (t *Tensor) MulAssign(other *Tensor) error {
	return t.assignOp("mul assign", other, func(a, b float64) float64 { return a * b })
}

// DivAssign divides t by other in place.
func (t *Tensor) DivAssign(other *Tensor) error {
	return t.assignOp("div assign", other, func(a, b float64) float64 { return a / b })
}

func (t *Tensor) assignOp(op string, other *Tensor, fn func(a, b float64) float64) error {
	outShape, needsBroadcast, err := BroadcastShapes(t.shape, other.shape)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !outShape.Equal(t.shape) {
		return fmt.Errorf("%s: operand shape %v does not broadcast into receiver shape %v: %w",
			op, other.shape, t.shape, ErrShapeMismatch)
	}

	a := t.Data()
	b := other.Data()
	if !needsBroadcast {
		for i := range a {
			a[i] = fn(a[i], b[i])
		}
		return nil
	}

	outStrides := t.shape.ComputeStrides()
	bStrides := broadcastStrides(other.shape, t.shape)
	for i := range a {
		a[i] = fn(a[i], b[flatIndex(i, outStrides, bStrides)])
	}
	return nil
}

// AddScalar returns t + v element-wise.
func (t *Tensor) AddScalar(v float64) *Tensor {
	return t.Map(func(x float64) float64 { return x + v })
}

// SubScalar returns t - v element-wise.
func (t *Tensor) SubScalar(v float64) *Tensor {
	return t.Map(func(x float64) float64 { return x - v })
}

// MulScalar returns t * v element-wise.
func (t *Tensor) MulScalar(v float64) *Tensor {
	return t.Map(func(x float64) float64 { return x * v })
}

// DivScalar returns t / v element-wise.
func (t *Tensor) DivScalar(v float64) *Tensor {
	return t.Map(func(x float64) float64 { return x / v })
}

// ScalarAdd returns v + t element-wise.
func ScalarAdd(v float64, t *Tensor) *Tensor {
	return t.AddScalar(v)
}

// ScalarSub returns v - t element-wise.
func ScalarSub(v float64, t *Tensor) *Tensor {
	return t.Map(func(x float64) float64 { return v - x })
}

// ScalarMul returns v * t element-wise.
func ScalarMul(v float64, t *Tensor) *Tensor {
	return t.MulScalar(v)
}

// ScalarDiv returns v / t element-wise.
func ScalarDiv(v float64, t *Tensor) *Tensor {
	return t.Map(func(x float64) float64 { return v / x })
}

// AddScalarAssign adds v to every element in place.
func (t *Tensor) AddScalarAssign(v float64) {
	t.mapAssign(func(x float64) float64 { return x + v })
}

// SubScalarAssign subtracts v from every element in place.
func (t *Tensor) SubScalarAssign(v float64) {
	t.mapAssign(func(x float64) float64 { return x - v })
}

// MulScalarAssign multiplies every element by v in place.
func (t *Tensor) MulScalarAssign(v float64) {
	t.mapAssign(func(x float64) float64 { return x * v })
}

// DivScalarAssign divides every element by v in place.
func (t *Tensor) DivScalarAssign(v float64) {
	t.mapAssign(func(x float64) float64 { return x / v })
}

// Neg returns the element-wise negation.
func (t *Tensor) Neg() *Tensor {
	return t.Map(func(x float64) float64 { return -x })
}

// Map applies fn to every element, producing a fresh tensor.
func (t *Tensor) Map(fn func(float64) float64) *Tensor {
	result := newDense(t.shape)
	out := result.Data()
	for i, v := range t.Data() {
		out[i] = fn(v)
	}
	return result
}

func (t *Tensor) mapAssign(fn func(float64) float64) {
	data := t.Data()
	for i, v := range data {
		data[i] = fn(v)
	}
}

// Eq reports whether t and other are element-wise equal within epsilon
// (default 1e-5). The comparison is inclusive: a difference of exactly
// epsilon counts as equal, so epsilon 0 means exact equality. The shapes
// must be equal, ErrShapeMismatch otherwise.
func (t *Tensor) Eq(other *Tensor, epsilon ...float64) (bool, error) {
	if !t.shape.Equal(other.shape) {
		return false, fmt.Errorf("eq: shapes %v and %v differ: %w", t.shape, other.shape, ErrShapeMismatch)
	}
	eps := DefaultEqualityEpsilon
	if len(epsilon) > 0 {
		eps = epsilon[0]
	}

	a := t.Data()
	b := other.Data()
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false, nil
		}
	}
	return true, nil
}
