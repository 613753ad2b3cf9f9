// Package linalg provides dense linear algebra over the tensor package:
// batched matrix multiplication, LU with partial pivoting (plus
// determinant and inverse), Cholesky, Householder QR, one-sided Jacobi
// SVD and a symmetric eigendecomposition derived from it.
//
// Every operation treats a tensor of rank >= 2 as a batch of matrices over
// its trailing two dimensions and applies the kernel independently per
// batch slice; slices run in parallel across CPU cores since each writes
// a disjoint output region. Results are always fresh tensors that never
// alias their inputs, and every function is pure: no state survives a
// call.
//
// Numerical thresholds default to the package Default*Epsilon constants
// and can be overridden per call.
package linalg
