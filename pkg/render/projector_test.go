package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/softcam/pkg/math3d"
)

func randomCamera(rng *rand.Rand) *Camera {
	c := NewCamera()
	c.Position = math3d.V3(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
	c.Yaw = rng.Float64()*4*math.Pi - 2*math.Pi
	c.Pitch = rng.Float64()*2*MaxPitch - MaxPitch
	return c
}

func TestProjectCenter(t *testing.T) {
	c := NewCamera()
	p, ok := Project(c, math3d.V3(0, 0, -5), 800, 600)
	if !ok {
		t.Fatal("point in front of the camera was rejected")
	}
	if p != (ScreenPoint{400, 300}) {
		t.Errorf("Project = %v, want (400, 300)", p)
	}
}

func TestProjectPerspective(t *testing.T) {
	c := NewCamera()
	tests := []struct {
		name  string
		point math3d.Vec3
		want  ScreenPoint
	}{
		{"right", math3d.V3(1, 0, -4), ScreenPoint{500, 300}},
		{"up is screen up", math3d.V3(0, 1, -4), ScreenPoint{400, 200}},
		{"farther is smaller", math3d.V3(1, 1, -8), ScreenPoint{450, 250}},
		{"cube corner", math3d.V3(-1, -1, -6), ScreenPoint{333, 366}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Project(c, tc.point, 800, 600)
			if !ok {
				t.Fatal("rejected")
			}
			if got != tc.want {
				t.Errorf("Project(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestProjectBehindCamera(t *testing.T) {
	c := NewCamera()
	for _, p := range []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(0, 0, 1),
		math3d.V3(5, -3, 0),
		math3d.V3(100, 100, 0.001),
	} {
		if sp, ok := Project(c, p, 800, 600); ok {
			t.Errorf("Project(%v) = %v, want rejection", p, sp)
		}
	}
}

func TestProjectBehindCameraIsTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		c := randomCamera(rng)
		p := math3d.V3(rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*40-20)

		_, ok := Project(c, p, 640, 480)
		behind := c.ToCameraSpace(p).Z >= 0
		if behind && ok {
			t.Fatalf("camera %v: point %v behind the eye was projected", c, p)
		}
		if !behind && !ok {
			t.Fatalf("camera %v: point %v in front of the eye was rejected", c, p)
		}

		// Mirror the point through the eye along the view axis: it must be rejected.
		back := c.Position.Sub(c.Forward().Scale(1 + rng.Float64()*10))
		if sp, ok := Project(c, back, 640, 480); ok {
			t.Fatalf("camera %v: point %v behind the eye projected to %v", c, back, sp)
		}
	}
}

func TestProjectViewAxisHitsCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const w, h = 800, 600
	for i := 0; i < 1000; i++ {
		c := randomCamera(rng)
		d := 0.1 + rng.Float64()*50
		p := c.Position.Add(c.Forward().Scale(d))

		got, ok := Project(c, p, w, h)
		if !ok {
			t.Fatalf("camera %v: point on view axis rejected", c)
		}
		// Truncation may land one pixel short of the exact center.
		if abs(got.X-w/2) > 1 || abs(got.Y-h/2) > 1 {
			t.Fatalf("camera %v, d=%v: Project = %v, want (%d, %d)", c, d, got, w/2, h/2)
		}
	}
}

func TestProjectIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		c := randomCamera(rng)
		before := *c
		p := math3d.V3(rng.Float64()*10, rng.Float64()*10, rng.Float64()*10)

		a, okA := Project(c, p, 320, 240)
		b, okB := Project(c, p, 320, 240)
		if a != b || okA != okB {
			t.Fatalf("Project not repeatable: %v/%v vs %v/%v", a, okA, b, okB)
		}
		if *c != before {
			t.Fatalf("Project mutated the camera: %v -> %v", before, *c)
		}
	}
}

func TestProjectUsesGivenSize(t *testing.T) {
	c := NewCamera()
	p := math3d.V3(0, 0, -3)
	for _, size := range [][2]int{{800, 600}, {1024, 768}, {81, 47}} {
		got, ok := Project(c, p, size[0], size[1])
		if !ok {
			t.Fatal("rejected")
		}
		if got.X != size[0]/2 || got.Y != size[1]/2 {
			t.Errorf("size %v: Project = %v, want center", size, got)
		}
	}
}

func TestToCameraSpace(t *testing.T) {
	c := NewCamera()
	c.Position = math3d.V3(1, 2, 3)
	c.Yaw = math.Pi / 2 // looking down -X

	got := c.ToCameraSpace(math3d.V3(-4, 2, 3))
	if !approxVec(got, math3d.V3(0, 0, -5)) {
		t.Errorf("ToCameraSpace = %v, want (0, 0, -5)", got)
	}
}

func BenchmarkProject(b *testing.B) {
	c := NewCamera()
	c.Yaw, c.Pitch = 0.3, -0.2
	p := math3d.V3(1, 2, -10)

	for b.Loop() {
		_, _ = Project(c, p, 800, 600)
	}
}

func TestProjectNearEyeIsClamped(t *testing.T) {
	c := NewCamera()
	tests := []struct {
		name  string
		point math3d.Vec3
		wantX int
		wantY int
	}{
		{"upper right", math3d.V3(1, 1, -1e-300), 1 << 30, -(1 << 30)},
		{"lower left", math3d.V3(-1, -1, -1e-300), -(1 << 30), 1 << 30},
		{"on axis", math3d.V3(0, 0, -1e-300), 400, 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := Project(c, tc.point, 800, 600)
			if !ok {
				t.Fatal("rejected")
			}
			if p.X != tc.wantX || p.Y != tc.wantY {
				t.Errorf("Project(%v) = %v, want (%d, %d)", tc.point, p, tc.wantX, tc.wantY)
			}
		})
	}

	fb := NewFramebuffer(800, 600)
	r := NewRasterizer(c, fb)
	r.DrawLine3D(math3d.V3(-1, -1, -1e-300), math3d.V3(1, 1, -1e-300), ColorWhite)
	r.DrawTriangle3D(math3d.V3(-1, -1, -1e-300), math3d.V3(1, -1, -1e-300), math3d.V3(0, 1, -1e-300), ColorWhite)
	if r.Stats.LinesDrawn != 1 || r.Stats.TrianglesDrawn != 1 {
		t.Errorf("stats = %+v, want one line and one triangle", r.Stats)
	}
}
