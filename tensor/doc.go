// Package tensor provides dense N-dimensional float64 tensors over shared
// flat buffers.
//
// # Overview
//
// A Tensor is a shape plus a strided view into a flat buffer. The package
// provides:
//   - Construction from slices, fill values and seeded normal sampling
//   - NumPy-style broadcasting for element-wise arithmetic
//   - Reductions (sum/mean/min/max/std/variance/argmax), global and per
//     dimension with keep-dim semantics
//   - Views, physical transposition and copy-on-demand
//   - A batched matrix sequencer iterating the trailing two dimensions,
//     consumed by the linalg package
//
// # Basic Usage
//
//	a, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	b, _ := tensor.Ones(tensor.Shape{2, 2})
//	c, _ := a.Add(b)
//	fmt.Println(c.Sum()) // 14
//
// # Aliasing
//
// View, ViewAs and the matrix sequencer return tensors sharing the origin
// buffer: mutation through one alias is visible through all of them. Copy
// breaks aliasing by duplicating the underlying storage. In-place operations
// (AddAssign and friends) write through the receiver's buffer; exclusive
// access during such writes is the caller's responsibility, the package
// performs no locking.
//
// All other operations allocate fresh output buffers and never mutate their
// inputs.
package tensor
