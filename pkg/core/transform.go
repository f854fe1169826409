package core

import "math"

// mat4 is a 4x4 matrix stored row-major.
type mat4 [4][4]float64

func identity4() mat4 {
	var m mat4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

func (a mat4) mul(b mat4) mat4 {
	var r mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[i][k] * b[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

func (a mat4) transpose() mat4 {
	var r mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = a[j][i]
		}
	}
	return r
}

// inverse computes the inverse of a 4x4 matrix via Gauss-Jordan elimination
// with partial pivoting. Affine transforms built by this package are always
// invertible by construction (translation/rotation/scale with non-zero
// scale factors), so this is never called on a singular matrix in practice.
func (a mat4) inverse() mat4 {
	aug := [4][8]float64{}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			aug[i][j] = a[i][j]
		}
		aug[i][4+i] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		pv := aug[col][col]
		if pv == 0 {
			continue // singular; caller error, degrade gracefully
		}
		for j := 0; j < 8; j++ {
			aug[col][j] /= pv
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			for j := 0; j < 8; j++ {
				aug[r][j] -= factor * aug[col][j]
			}
		}
	}

	var inv mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			inv[i][j] = aug[i][4+j]
		}
	}
	return inv
}

// Transform is an affine mapping stored together with its inverse so that
// no runtime inversion is needed after construction.
type Transform struct {
	m, inv mat4
}

// Identity returns the identity transform.
func Identity() Transform { return Transform{m: identity4(), inv: identity4()} }

// Translate builds a translation transform.
func Translate(delta Vec3) Transform {
	m := identity4()
	m[0][3], m[1][3], m[2][3] = delta.X, delta.Y, delta.Z
	inv := identity4()
	inv[0][3], inv[1][3], inv[2][3] = -delta.X, -delta.Y, -delta.Z
	return Transform{m: m, inv: inv}
}

// Scale builds a non-uniform scale transform.
func Scale(x, y, z float64) Transform {
	m := identity4()
	m[0][0], m[1][1], m[2][2] = x, y, z
	inv := identity4()
	inv[0][0], inv[1][1], inv[2][2] = 1/x, 1/y, 1/z
	return Transform{m: m, inv: inv}
}

// Rotate builds a rotation of angleDegrees about axis (Rodrigues' formula).
// A zero-length axis is a configuration error the caller must reject before
// construction; here it degrades to the identity rather than producing NaN.
func Rotate(axisIn Vec3, angleDegrees float64) Transform {
	axis := axisIn.Normalize()
	if axis.IsZero() {
		return Identity()
	}
	theta := angleDegrees * math.Pi / 180
	s, c := math.Sin(theta), math.Cos(theta)

	var m mat4 = identity4()
	a := [3]float64{axis.X, axis.Y, axis.Z}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var kronecker float64
			if i == j {
				kronecker = 1
			}
			cross := 0.0
			switch {
			case i == 0 && j == 1:
				cross = -a[2]
			case i == 0 && j == 2:
				cross = a[1]
			case i == 1 && j == 0:
				cross = a[2]
			case i == 1 && j == 2:
				cross = -a[0]
			case i == 2 && j == 0:
				cross = -a[1]
			case i == 2 && j == 1:
				cross = a[0]
			}
			m[i][j] = kronecker*c + a[i]*a[j]*(1-c) + cross*s
		}
	}
	return Transform{m: m, inv: m.transpose()} // rotation matrices are orthogonal
}

// LookAt builds a world-from-camera transform with the camera at eye
// looking toward target, with the given up hint. Cameras emit rays down
// their local -z, so the backward axis (eye-target, not target-eye) goes
// in column 2: camera-space (0,0,-1) must map to the world-space direction
// toward target.
func LookAt(eye, target, up Vec3) Transform {
	back := eye.Subtract(target).Normalize()
	right := up.Normalize().Cross(back).Normalize()
	newUp := back.Cross(right)

	m := identity4()
	m[0][0], m[1][0], m[2][0] = right.X, right.Y, right.Z
	m[0][1], m[1][1], m[2][1] = newUp.X, newUp.Y, newUp.Z
	m[0][2], m[1][2], m[2][2] = back.X, back.Y, back.Z
	m[0][3], m[1][3], m[2][3] = eye.X, eye.Y, eye.Z

	return Transform{m: m, inv: m.inverse()}
}

// Compose returns a transform equal to applying b first, then a (a∘b):
// forward matrices multiply left-to-right, inverses compose right-to-left.
func Compose(a, b Transform) Transform {
	return Transform{m: a.m.mul(b.m), inv: b.inv.mul(a.inv)}
}

// Inverse returns the inverse transform by swapping the stored matrices.
func (t Transform) Inverse() Transform { return Transform{m: t.inv, inv: t.m} }

// Point applies the transform to a point (homogeneous w=1).
func (t Transform) Point(p Vec3) Vec3 { return applyAffine(t.m, p, 1) }

// Vector applies the transform to a direction (homogeneous w=0).
func (t Transform) Vector(v Vec3) Vec3 { return applyAffine(t.m, v, 0) }

// Normal applies the inverse-transpose to a normal (homogeneous w=0), which
// is the correct rule for transforming normals under non-uniform scale.
func (t Transform) Normal(n Vec3) Vec3 {
	it := t.inv.transpose()
	return applyAffine(it, n, 0)
}

func applyAffine(m mat4, v Vec3, w float64) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*w,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*w,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*w,
	}
}

// Ray applies the transform to a ray, transforming the origin as a point
// and the direction as a vector, and preserving TMin/TMax.
func (t Transform) Ray(r Ray) Ray {
	return Ray{
		Origin:    t.Point(r.Origin),
		Direction: t.Vector(r.Direction),
		TMin:      r.TMin,
		TMax:      r.TMax,
	}
}

// TangentFrame builds the tangent-from-world transform at a surface point
// with unit normal n: a right-handed orthonormal frame with z = n, rows
// (s, t, n). The axis of n with smallest absolute value is used to seed a
// perpendicular vector, avoiding near-degenerate cross products.
func TangentFrame(n Vec3) Transform {
	var seed Vec3
	switch {
	case math.Abs(n.X) <= math.Abs(n.Y) && math.Abs(n.X) <= math.Abs(n.Z):
		seed = Vec3{1, 0, 0}
	case math.Abs(n.Y) <= math.Abs(n.Z):
		seed = Vec3{0, 1, 0}
	default:
		seed = Vec3{0, 0, 1}
	}

	s := seed.Subtract(n.Multiply(seed.Dot(n))).Normalize()
	tt := n.Cross(s)

	m := identity4()
	m[0][0], m[0][1], m[0][2] = s.X, s.Y, s.Z
	m[1][0], m[1][1], m[1][2] = tt.X, tt.Y, tt.Z
	m[2][0], m[2][1], m[2][2] = n.X, n.Y, n.Z

	// This basis-change matrix is orthogonal, so its inverse is its transpose.
	return Transform{m: m, inv: m.transpose()}
}
