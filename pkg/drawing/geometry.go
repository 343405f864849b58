// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package drawing

import "math"

// Point3d is a location in world coordinates.
type Point3d struct {
	X, Y, Z float64
}

// Vector3d is a direction in world coordinates.
type Vector3d struct {
	X, Y, Z float64
}

var (
	// XAxis is the world X direction
	XAxis = Vector3d{X: 1}
	// YAxis is the world Y direction
	YAxis = Vector3d{Y: 1}
	// ZAxis is the world Z direction
	ZAxis = Vector3d{Z: 1}
)

// Sub returns the vector from o to p.
func (p Point3d) Sub(o Point3d) Vector3d {
	return Vector3d{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Add moves p by v.
func (p Point3d) Add(v Vector3d) Point3d {
	return Point3d{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

func (v Vector3d) Sub(o Vector3d) Vector3d {
	return Vector3d{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector3d) Dot(o Vector3d) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3d) Cross(o Vector3d) Vector3d {
	return Vector3d{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3d) Scale(f float64) Vector3d {
	return Vector3d{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

func (v Vector3d) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector of v, or the zero vector if v has no length.
func (v Vector3d) Normalize() Vector3d {
	l := v.Length()
	if l == 0 {
		return Vector3d{}
	}
	return v.Scale(1 / l)
}

// IsZero reports whether v has no usable length.
func (v Vector3d) IsZero() bool {
	return v.Length() < epsilon
}

const epsilon = 1e-9
