// Package camera provides the orbit camera used to inspect a model.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDirection is the initial view direction, from target to eye.
var DefaultDirection = mgl32.Vec3{0.6, 0.3, 1.0}

const maxPitch = math.Pi/2 - 0.01

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Target mgl32.Vec3

	// Spherical coordinates around Target
	Distance float32
	Pitch    float32 // Elevation above the XZ plane (radians)
	Yaw      float32 // Rotation around +Y, 0 looks down -Z (radians)

	// Constraints, derived from the scene radius
	MinDistance float32
	MaxDistance float32

	// Projection
	FovY float32 // Vertical field of view (radians)
	Near float32
	Far  float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32

	radius float32
}

// NewOrbitCamera creates a camera framing a scene of the given radius,
// looking from DefaultDirection.
func NewOrbitCamera(sceneRadius, fovDegrees, near, far float32) *OrbitCamera {
	c := &OrbitCamera{
		FovY:            fovDegrees * math.Pi / 180,
		Near:            near,
		Far:             far,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.002,
	}
	c.SetSceneRadius(sceneRadius)
	c.Distance = c.fitDistance(sceneRadius)
	c.LookFrom(DefaultDirection)
	return c
}

// SetSceneRadius updates the zoom limits to 0.1 and 100 times radius.
func (c *OrbitCamera) SetSceneRadius(radius float32) {
	if radius <= 0 {
		radius = 1
	}
	c.radius = radius
	c.MinDistance = radius * 0.1
	c.MaxDistance = radius * 100
	c.clampDistance()
}

// SceneRadius returns the radius set by SetSceneRadius or FitToBounds.
func (c *OrbitCamera) SceneRadius() float32 { return c.radius }

// LookFrom places the eye along dir from the target, keeping the distance.
// A zero direction is ignored.
func (c *OrbitCamera) LookFrom(dir mgl32.Vec3) {
	if dir.Len() == 0 {
		return
	}
	n := dir.Normalize()
	c.Pitch = clampPitch(float32(math.Asin(float64(n.Y()))))
	c.Yaw = float32(math.Atan2(float64(n.X()), float64(n.Z())))
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	return c.Target.Add(c.offset())
}

func (c *OrbitCamera) offset() mgl32.Vec3 {
	cp := math.Cos(float64(c.Pitch))
	return mgl32.Vec3{
		c.Distance * float32(cp*math.Sin(float64(c.Yaw))),
		c.Distance * float32(math.Sin(float64(c.Pitch))),
		c.Distance * float32(cp*math.Cos(float64(c.Yaw))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the given
// width/height ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleDrag rotates around the target by a mouse drag in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clampPitch(c.Pitch + deltaY*c.DragSensitivity)
}

// HandleZoom moves toward or away from the target by a wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clampDistance()
}

// HandlePan moves the target in the view plane by a drag in pixels.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	forward := c.offset().Mul(-1).Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	up := right.Cross(forward)

	speed := c.Distance * c.PanSensitivity
	c.Target = c.Target.
		Add(right.Mul(-deltaX * speed)).
		Add(up.Mul(deltaY * speed))
}

// HandleMovement pans the target from keyboard input, relative to the
// current yaw.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	speed := c.Distance * 0.01

	dirX := float32(math.Sin(float64(c.Yaw)))
	dirZ := float32(math.Cos(float64(c.Yaw)))

	c.Target[0] += (-dirX*forward + dirZ*right) * speed
	c.Target[2] += (-dirZ*forward - dirX*right) * speed
	c.Target[1] += up * speed
}

// FitToBounds centres the target on the box and backs off until a sphere
// around it fills the field of view. Zoom limits and clip planes follow
// the new radius.
func (c *OrbitCamera) FitToBounds(lo, hi mgl32.Vec3) {
	c.Target = lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius <= 0 {
		radius = 1
	}
	c.SetSceneRadius(radius)
	c.Distance = c.fitDistance(radius)
	c.Near = radius * 0.01
	c.Far = c.Distance + radius*100
}

func (c *OrbitCamera) fitDistance(radius float32) float32 {
	half := float64(c.FovY) / 2
	if half <= 0 {
		half = math.Pi / 6
	}
	d := radius / float32(math.Sin(half))
	return min(max(d, c.MinDistance), c.MaxDistance)
}

func (c *OrbitCamera) clampDistance() {
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

func clampPitch(p float32) float32 {
	return min(max(p, -maxPitch), maxPitch)
}
