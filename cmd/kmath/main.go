// Package main provides the kmath demo CLI: it generates random batch
// matrices, runs the requested factorization and reports reconstruction
// residuals and timings.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/michael-bauer-horsch/kmath/linalg"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

var (
	opName  = flag.String("op", "lu", "Operation to run (lu, chol, qr, svd, symeig, det, inv)")
	size    = flag.Int("n", 8, "Matrix side length")
	batch   = flag.Int("batch", 4, "Number of batch matrices")
	seed    = flag.Uint64("seed", 42, "Seed for the random input")
	epsilon = flag.Float64("epsilon", 0, "Override the operation's default epsilon (0 keeps the default)")
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	flag.Parse()
	if *size < 1 || *batch < 1 {
		log.Fatal().Int("n", *size).Int("batch", *batch).Msg("n and batch must be positive")
	}

	a, err := randomInput(*opName, *size, *batch, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("building input")
	}
	log.Info().Str("op", *opName).Int("n", *size).Int("batch", *batch).Uint64("seed", *seed).Msg("running")

	start := time.Now()
	residual, err := run(*opName, a)
	elapsed := time.Since(start)
	if err != nil {
		log.Fatal().Err(err).Str("op", *opName).Msg("factorization failed")
	}

	log.Info().
		Str("op", *opName).
		Float64("max_residual", residual).
		Dur("elapsed", elapsed).
		Msg("done")
	fmt.Printf("%s: max residual %.3e in %s\n", *opName, residual, elapsed)
}

// randomInput draws a standard normal batch and, for the operations that
// need it, symmetrizes into a positive-definite matrix A·Aᵗ + n·I.
func randomInput(op string, n, batch int, seed uint64) (*tensor.Tensor, error) {
	a, err := tensor.RandomNormal(tensor.Shape{batch, n, n}, seed)
	if err != nil {
		return nil, err
	}
	if op != "chol" && op != "symeig" {
		return a, nil
	}

	at, err := a.Transpose(-2, -1)
	if err != nil {
		return nil, err
	}
	spd, err := linalg.Dot(a, at)
	if err != nil {
		return nil, err
	}
	shift, err := linalg.DiagonalEmbedding(mustFull(float64(n), tensor.Shape{batch, n}), 0, -2, -1)
	if err != nil {
		return nil, err
	}
	return spd.Add(shift)
}

func run(op string, a *tensor.Tensor) (float64, error) {
	var eps []float64
	if *epsilon > 0 {
		eps = []float64{*epsilon}
	}

	switch op {
	case "lu":
		p, l, u, err := linalg.LU(a, eps...)
		if err != nil {
			return 0, err
		}
		// P·A = L·U
		pa, err := linalg.Dot(p, a)
		if err != nil {
			return 0, err
		}
		return reconstructionResidual(pa, l, u)
	case "chol":
		l, err := linalg.Cholesky(a, eps...)
		if err != nil {
			return 0, err
		}
		lt, err := l.Transpose(-2, -1)
		if err != nil {
			return 0, err
		}
		return reconstructionResidual(a, l, lt)
	case "qr":
		q, r, err := linalg.QR(a)
		if err != nil {
			return 0, err
		}
		return reconstructionResidual(a, q, r)
	case "svd":
		u, s, v, err := linalg.SVD(a, eps...)
		if err != nil {
			return 0, err
		}
		ds, err := linalg.DiagonalEmbedding(s, 0, -2, -1)
		if err != nil {
			return 0, err
		}
		vt, err := v.Transpose(-2, -1)
		if err != nil {
			return 0, err
		}
		return reconstructionResidual(a, u, ds, vt)
	case "symeig":
		vals, vecs, err := linalg.SymEig(a, eps...)
		if err != nil {
			return 0, err
		}
		// A·V should equal V·diag(vals).
		av, err := linalg.Dot(a, vecs)
		if err != nil {
			return 0, err
		}
		dv, err := linalg.DiagonalEmbedding(vals, 0, -2, -1)
		if err != nil {
			return 0, err
		}
		vd, err := linalg.Dot(vecs, dv)
		if err != nil {
			return 0, err
		}
		return maxAbsDiff(av, vd)
	case "det":
		d, err := linalg.Det(a, eps...)
		if err != nil {
			return 0, err
		}
		log.Info().Floats64("det", d.Data()).Msg("determinants")
		return 0, nil
	case "inv":
		inv, err := linalg.Inv(a, eps...)
		if err != nil {
			return 0, err
		}
		prod, err := linalg.Dot(a, inv)
		if err != nil {
			return 0, err
		}
		eyes, err := eyeBatch(a)
		if err != nil {
			return 0, err
		}
		return maxAbsDiff(prod, eyes)
	default:
		return 0, fmt.Errorf("unknown op %q", op)
	}
}

// reconstructionResidual multiplies the factors back together and returns
// the largest absolute deviation from the original input.
func reconstructionResidual(a *tensor.Tensor, factors ...*tensor.Tensor) (float64, error) {
	prod := factors[0]
	var err error
	for _, f := range factors[1:] {
		prod, err = linalg.Dot(prod, f)
		if err != nil {
			return 0, err
		}
	}
	return maxAbsDiff(a, prod)
}

func maxAbsDiff(a, b *tensor.Tensor) (float64, error) {
	diff, err := a.Sub(b)
	if err != nil {
		return 0, err
	}
	var worst float64
	for _, x := range diff.Data() {
		if v := math.Abs(x); v > worst {
			worst = v
		}
	}
	return worst, nil
}

func eyeBatch(a *tensor.Tensor) (*tensor.Tensor, error) {
	shape := a.Shape()
	return linalg.DiagonalEmbedding(mustFull(1, shape[:len(shape)-1].Clone()), 0, -2, -1)
}

func mustFull(v float64, shape tensor.Shape) *tensor.Tensor {
	t, err := tensor.Full(v, shape)
	if err != nil {
		log.Fatal().Err(err).Msg("allocating")
	}
	return t
}
