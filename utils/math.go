package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// input in radians, rotation X x Y x Z (Z applied to points first)
func EulerXYZToQuat(v mgl32.Vec3) mgl32.Quat {
	q := mgl32.QuatRotate(v[0], axisX)
	q = q.Mul(mgl32.QuatRotate(v[1], axisY))
	q = q.Mul(mgl32.QuatRotate(v[2], axisZ))
	return q.Normalize()
}

// result in radians, inverse of EulerXYZToQuat
func QuatToEulerXYZ(q mgl32.Quat) mgl32.Vec3 {
	return Mat4ToEulerXYZ(q.Normalize().Mat4())
}

// Mat4ToEulerXYZ extracts angles from the rotation part of an unscaled matrix.
func Mat4ToEulerXYZ(m mgl32.Mat4) (e mgl32.Vec3) {
	sy := float64(m.At(0, 2))
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	e[1] = float32(math.Asin(sy))

	if math.Abs(sy) < 0.9999999 {
		e[0] = float32(math.Atan2(float64(-m.At(1, 2)), float64(m.At(2, 2))))
		e[2] = float32(math.Atan2(float64(-m.At(0, 1)), float64(m.At(0, 0))))
	} else {
		// gimbal lock, fold z into x
		e[0] = float32(math.Atan2(float64(m.At(2, 1)), float64(m.At(1, 1))))
		e[2] = 0
	}
	return e
}

func DegreeToRadiansV3(v mgl32.Vec3) mgl32.Vec3 {
	return v.Mul(math.Pi / 180.0)
}

func RadiansToDegreeV3(v mgl32.Vec3) mgl32.Vec3 {
	return v.Mul(180.0 / math.Pi)
}
