package tensor

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("zeros: %w", err)
	}
	return newDense(shape), nil
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) (*Tensor, error) {
	return Full(1, shape)
}

// Full creates a tensor filled with a specific value.
func Full(value float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("full: %w", err)
	}
	t := newDense(shape)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t, nil
}

// Eye creates an n-by-n identity matrix.
func Eye(n int) (*Tensor, error) {
	if n < 1 {
		return nil, fmt.Errorf("eye: size %d must be > 0: %w", n, ErrShape)
	}
	t := newDense(Shape{n, n})
	data := t.Data()
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	return t, nil
}

// Produce creates a tensor by evaluating fn at every multi-index of shape,
// in row-major order.
func Produce(shape Shape, fn func(index []int) float64) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	t := newDense(shape)
	data := t.Data()

	positions := t.layout.Positions()
	for i := 0; ; i++ {
		index, ok := positions.Next()
		if !ok {
			break
		}
		data[i] = fn(index)
	}
	return t, nil
}

// RandomNormal creates a tensor with values drawn from the standard normal
// distribution. The generator is constructed from the seed and local to
// this call, so equal seeds yield equal tensors and no global state is
// touched.
func RandomNormal(shape Shape, seed uint64) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("random normal: %w", err)
	}
	normal := distuv.Normal{
		Mu:    0,
		Sigma: 1,
		Src:   rand.NewSource(seed),
	}

	t := newDense(shape)
	data := t.Data()
	for i := range data {
		data[i] = normal.Rand()
	}
	return t, nil
}
