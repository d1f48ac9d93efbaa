package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option used to configure a Camera during construction.
type CameraBuilderOption func(*camera)

// NewCamera creates a perspective camera looking down the negative Z axis
// from (0, 1, 2) by default.
//
// Parameters:
//   - opts: the options to apply to the camera
//
// Returns:
//   - Camera: the configured camera
func NewCamera(opts ...CameraBuilderOption) Camera {
	c := &camera{
		eye:    mgl32.Vec3{0, 1, 2},
		target: mgl32.Vec3{0, 0, 0},
		up:     mgl32.Vec3{0, 1, 0},
		fovY:   float32(math.Pi / 4),
		aspect: 1,
		near:   0.1,
		far:    100,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithEye sets the camera position.
//
// Parameters:
//   - eye: the camera position in world space
//
// Returns:
//   - CameraBuilderOption: a function that sets the eye on the camera
func WithEye(eye mgl32.Vec3) CameraBuilderOption {
	return func(c *camera) {
		c.eye = eye
	}
}

// WithTarget sets the point the camera looks at.
//
// Parameters:
//   - target: the look-at point in world space
//
// Returns:
//   - CameraBuilderOption: a function that sets the target on the camera
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *camera) {
		c.target = target
	}
}

// WithPerspective sets the projection parameters.
//
// Parameters:
//   - fovY: the vertical field of view in radians
//   - aspect: the width / height ratio
//   - near: the near clip distance
//   - far: the far clip distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection on the camera
func WithPerspective(fovY, aspect, near, far float32) CameraBuilderOption {
	return func(c *camera) {
		c.fovY = fovY
		c.aspect = aspect
		c.near = near
		c.far = far
	}
}
