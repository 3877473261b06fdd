package rmsd

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/lpsd/remodel/pdb"
)

// Represents a 3x3 matrix, in row-major order
// | 0 1 2 |
// | 3 4 5 |
// | 6 7 8 |
type matrix3 [9]float64

var identity3 = matrix3{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

func (a matrix3) mult(b matrix3) matrix3 {
	return matrix3{
		a[0]*b[0] + a[1]*b[3] + a[2]*b[6],
		a[0]*b[1] + a[1]*b[4] + a[2]*b[7],
		a[0]*b[2] + a[1]*b[5] + a[2]*b[8],

		a[3]*b[0] + a[4]*b[3] + a[5]*b[6],
		a[3]*b[1] + a[4]*b[4] + a[5]*b[7],
		a[3]*b[2] + a[4]*b[5] + a[5]*b[8],

		a[6]*b[0] + a[7]*b[3] + a[8]*b[6],
		a[6]*b[1] + a[7]*b[4] + a[8]*b[7],
		a[6]*b[2] + a[7]*b[5] + a[8]*b[8],
	}
}

func (a matrix3) transpose() matrix3 {
	return matrix3{
		a[0], a[3], a[6],
		a[1], a[4], a[7],
		a[2], a[5], a[8],
	}
}

func (a matrix3) det() float64 {
	// 048 + 156 + 237 - 246 - 138 - 057
	return a[0]*a[4]*a[8] +
		a[1]*a[5]*a[6] +
		a[2]*a[3]*a[7] -
		a[2]*a[4]*a[6] -
		a[1]*a[3]*a[8] -
		a[0]*a[5]*a[7]
}

// apply returns a·p.
func (a matrix3) apply(p pdb.Coords) pdb.Coords {
	return pdb.Coords{
		a[0]*p[0] + a[1]*p[1] + a[2]*p[2],
		a[3]*p[0] + a[4]*p[1] + a[5]*p[2],
		a[6]*p[0] + a[7]*p[1] + a[8]*p[2],
	}
}

// negateColumn returns a copy of a with column c negated.
func (a matrix3) negateColumn(c int) matrix3 {
	for r := 0; r < 3; r++ {
		a[r*3+c] = -a[r*3+c]
	}
	return a
}

// covariance returns the 3x3 cross-covariance of two centered point sets,
// i.e., X^T Y where X and Y are Nx3 matrices with one point per row.
func covariance(x, y []pdb.Coords) matrix3 {
	var c matrix3
	for i := range x {
		for r := 0; r < 3; r++ {
			for col := 0; col < 3; col++ {
				c[r*3+col] += x[i][r] * y[i][col]
			}
		}
	}
	return c
}

// svd computes a = U S V^T and returns U and V.
func (a matrix3) svd() (matrix3, matrix3, error) {
	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(3, 3, a[:]), mat.SVDFull); !ok {
		return matrix3{}, matrix3{}, errors.New("singular value decomposition failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	return fromDense(&u), fromDense(&v), nil
}

func fromDense(m mat.Matrix) matrix3 {
	var a matrix3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			a[r*3+c] = m.At(r, c)
		}
	}
	return a
}
