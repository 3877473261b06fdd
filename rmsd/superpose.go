package rmsd

import (
	"errors"
	"fmt"

	"github.com/lpsd/remodel/pdb"
)

// ErrLength is returned when two point sets that must correspond point by
// point have different lengths, or are empty.
var ErrLength = errors.New("point sets must have the same non-zero length")

// Transform is a rigid body transformation p' = R·p + t, where R is a proper
// rotation stored in row-major order.
type Transform struct {
	Rotation    [9]float64
	Translation pdb.Coords
}

// Point returns R·p + t.
func (t Transform) Point(p pdb.Coords) pdb.Coords {
	return matrix3(t.Rotation).apply(p).Add(t.Translation)
}

// Apply moves every atom of s, in place.
func (t Transform) Apply(s pdb.Structure) {
	s.Transform(t.Point)
}

// Superpose computes the rigid transformation that best maps source onto
// target in the least squares sense. Points correspond by index.
//
// Build the Nx3 matrices X and Y of the source and target points after
// centering each on its centroid, compute the covariance H = X^T Y and its
// singular value decomposition H = U S V^T. If det(U)·det(V) is negative the
// naive solution is a reflection, which is corrected by negating the last
// column of U. The rotation is then R = (U V^T)^T and the translation is
// t = centroid(Y) - R·centroid(X).
func Superpose(source, target []pdb.Coords) (Transform, error) {
	if len(source) != len(target) || len(source) == 0 {
		return Transform{}, fmt.Errorf("superimposing %d points onto %d points: %w",
			len(source), len(target), ErrLength)
	}

	cs, ct := centroid(source), centroid(target)
	x := make([]pdb.Coords, len(source))
	y := make([]pdb.Coords, len(target))
	for i := range source {
		x[i] = source[i].Sub(cs)
		y[i] = target[i].Sub(ct)
	}

	u, v, err := covariance(x, y).svd()
	if err != nil {
		return Transform{}, err
	}
	if u.det()*v.det() < 0 {
		u = u.negateColumn(2)
	}
	rot := u.mult(v.transpose()).transpose()

	return Transform{
		Rotation:    rot,
		Translation: ct.Sub(rot.apply(cs)),
	}, nil
}

// centroid calculates the average position of a set of points.
func centroid(points []pdb.Coords) pdb.Coords {
	var c pdb.Coords
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(points)))
}
