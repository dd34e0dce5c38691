package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestTranslateTransform(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})
	assert.Equal(t, Vec3{11, 22, 33}, got)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 50, 100}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	got := view.TransformVec3(eye)
	assert.InDelta(t, 0, got.X, 1e-3)
	assert.InDelta(t, 0, got.Y, 1e-3)
	assert.InDelta(t, 0, got.Z, 1e-3)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(1.0, 16.0/9.0, 1, 1000)

	near := proj.TransformVec3(Vec3{0, 0, -1})
	far := proj.TransformVec3(Vec3{0, 0, -1000})
	assert.InDelta(t, -1, near.Z, 1e-4)
	assert.InDelta(t, 1, far.Z, 1e-3)
}

func TestOrthoMapsBoxToClipCube(t *testing.T) {
	proj := Ortho(-10, 10, -5, 5, 1, 101)

	lo := proj.TransformVec3(Vec3{-10, -5, -1})
	hi := proj.TransformVec3(Vec3{10, 5, -101})
	assert.InDeltaSlice(t, []float32{-1, -1, -1}, []float32{lo.X, lo.Y, lo.Z}, 1e-5)
	assert.InDeltaSlice(t, []float32{1, 1, 1}, []float32{hi.X, hi.Y, hi.Z}, 1e-5)
}

func TestInverseRoundTrip(t *testing.T) {
	m := Perspective(1.0, 1.5, 0.5, 500).Mul(LookAt(Vec3{3, 40, -7}, Vec3{20, 0, 10}, Vec3{0, 1, 0}))

	inv, ok := m.Inverse()
	assert.True(t, ok)

	product := m.Mul(inv)
	identity := Identity()
	for i := range product {
		assert.InDelta(t, identity[i], product[i], 1e-3, "element %d", i)
	}
}

func TestInverseSingular(t *testing.T) {
	_, ok := Mat4{}.Inverse()
	assert.False(t, ok)
}

func TestMulVec4MatchesTransform(t *testing.T) {
	m := Translate(1, -2, 3)
	v := m.MulVec4(Vec4{4, 5, 6, 1})
	assert.Equal(t, Vec4{5, 3, 9, 1}, v)
}
