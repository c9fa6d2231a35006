package render

import (
	"math"
	"testing"

	"github.com/taigrr/softcam/pkg/math3d"
)

func TestPlaneNormalize(t *testing.T) {
	p := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	p.Normalize()

	if !approx(p.Normal.Len(), 1) {
		t.Errorf("normal length = %v, want 1", p.Normal.Len())
	}
	if !approx(p.D, 2) {
		t.Errorf("D = %v, want 2", p.D)
	}

	zero := Plane{D: 5}
	zero.Normalize()
	if zero.D != 5 {
		t.Error("zero-normal plane modified")
	}
}

func TestPlaneDistanceToPoint(t *testing.T) {
	p := Plane{Normal: math3d.V3(0, 1, 0), D: -2} // y = 2

	tests := []struct {
		point math3d.Vec3
		want  float64
	}{
		{math3d.V3(0, 5, 0), 3},
		{math3d.V3(7, 2, -1), 0},
		{math3d.V3(0, 0, 0), -2},
	}
	for _, tc := range tests {
		if got := p.DistanceToPoint(tc.point); !approx(got, tc.want) {
			t.Errorf("DistanceToPoint(%v) = %v, want %v", tc.point, got, tc.want)
		}
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	f := NewFrustum(NewCamera(), 800, 600)

	// At depth 4 the surface spans x in ±4*400/400 = ±4, y in ±3.
	tests := []struct {
		name  string
		point math3d.Vec3
		want  bool
	}{
		{"center", math3d.V3(0, 0, -5), true},
		{"near right edge", math3d.V3(3.9, 0, -4), true},
		{"past right edge", math3d.V3(4.5, 0, -4), false},
		{"past left edge", math3d.V3(-4.5, 0, -4), false},
		{"past top edge", math3d.V3(0, 3.5, -4), false},
		{"past bottom edge", math3d.V3(0, -3.5, -4), false},
		{"behind", math3d.V3(0, 0, 5), false},
		{"at eye", math3d.V3(0, 0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ContainsPoint(tc.point); got != tc.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestFrustumAgreesWithProject(t *testing.T) {
	cam := NewCamera()
	cam.Position = math3d.V3(1, 2, 3)
	cam.Yaw = 0.7
	cam.Pitch = -0.3
	const w, h = 320, 200
	f := NewFrustum(cam, w, h)

	for x := -10.0; x <= 10; x += 0.5 {
		for z := -10.0; z <= 10; z += 0.5 {
			p := math3d.V3(x, 0, z)
			sp, ok := Project(cam, p, w, h)
			onScreen := ok && sp.X >= 0 && sp.X < w && sp.Y >= 0 && sp.Y < h
			if onScreen && !f.ContainsPoint(cam.ToCameraSpace(p)) {
				t.Fatalf("%v projects to %v on screen but is outside the frustum", p, sp)
			}
		}
	}
}

func TestFrustumCubeVisible(t *testing.T) {
	cam := NewCamera()
	f := NewFrustum(cam, 800, 600)

	tests := []struct {
		name   string
		center math3d.Vec3
		size   float64
		want   bool
	}{
		{"in front", math3d.V3(0, 0, -5), 2, true},
		{"behind", math3d.V3(0, 0, 5), 2, false},
		{"straddling the eye", math3d.V3(0, 0, 0.5), 2, true},
		{"far left", math3d.V3(-50, 0, -5), 2, false},
		{"partly past the right edge", math3d.V3(5.5, 0, -5), 2, true},
		{"above", math3d.V3(0, 40, -5), 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.CubeVisible(cam, tc.center, tc.size); got != tc.want {
				t.Errorf("CubeVisible(%v, %v) = %v, want %v", tc.center, tc.size, got, tc.want)
			}
		})
	}
}

func TestFrustumFollowsCamera(t *testing.T) {
	cam := NewCamera()
	cube := math3d.V3(0, 0, -5)

	cam.Yaw = math.Pi // looking down +Z
	f := NewFrustum(cam, 800, 600)
	if f.CubeVisible(cam, cube, 2) {
		t.Error("cube behind a turned camera reported visible")
	}

	cam.Position = math3d.V3(0, 0, -10)
	if !f.CubeVisible(cam, cube, 2) {
		t.Error("cube in front of a moved camera reported culled")
	}
}

func BenchmarkFrustumCubeVisible(b *testing.B) {
	cam := NewCamera()
	f := NewFrustum(cam, 800, 600)
	center := math3d.V3(3, 1, -8)

	for b.Loop() {
		_ = f.CubeVisible(cam, center, 2)
	}
}
