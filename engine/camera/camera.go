package camera

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// camera is the implementation of the Camera interface.
type camera struct {
	eye    mgl32.Vec3
	target mgl32.Vec3
	up     mgl32.Vec3

	fovY   float32
	aspect float32
	near   float32
	far    float32
}

var _ Camera = &camera{}

// Camera produces the view-projection matrix for the geometry pipeline's
// uniform. It is a plain perspective camera; controllers and input mapping
// live with the caller.
type Camera interface {
	// ViewProjection returns the combined projection * view matrix.
	ViewProjection() mgl32.Mat4

	// SetAspect updates the projection aspect ratio, typically on resize.
	//
	// Parameters:
	//   - aspect: the new width / height ratio
	SetAspect(aspect float32)

	// SetEye moves the camera position.
	SetEye(eye mgl32.Vec3)

	// SetTarget changes the point the camera looks at.
	SetTarget(target mgl32.Vec3)

	// MarshalUniform serializes the view-projection matrix into the 64-byte
	// column-major layout the geometry shader's camera uniform expects.
	MarshalUniform() []byte
}

// UniformSize is the byte size of the camera uniform.
const UniformSize = 64

func (c *camera) ViewProjection() mgl32.Mat4 {
	view := mgl32.LookAtV(c.eye, c.target, c.up)
	proj := mgl32.Perspective(c.fovY, c.aspect, c.near, c.far)
	return proj.Mul4(view)
}

func (c *camera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *camera) SetEye(eye mgl32.Vec3) {
	c.eye = eye
}

func (c *camera) SetTarget(target mgl32.Vec3) {
	c.target = target
}

func (c *camera) MarshalUniform() []byte {
	vp := c.ViewProjection()
	buf := make([]byte, UniformSize)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(vp[i]))
	}
	return buf
}
