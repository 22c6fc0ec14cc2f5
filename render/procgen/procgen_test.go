package procgen

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chiSquare against a uniform expectation over len(bins) cells.
func chiSquare(bins []int, total int) float64 {
	expected := float64(total) / float64(len(bins))
	var x2 float64
	for _, observed := range bins {
		d := float64(observed) - expected
		x2 += d * d / expected
	}
	return x2
}

// 7 degrees of freedom, p = 0.001
const chi2Critical7 = 24.32

func TestFlareFieldOnSphereSurface(t *testing.T) {
	const sunRadius = 5.0
	field, err := FlareField(NewSource(1), FlareCount, sunRadius)
	require.NoError(t, err)
	require.Equal(t, FlareCount, field.Len())

	for i := 0; i < field.Len(); i++ {
		p := field.At(i)
		assert.InDelta(t, sunRadius*FlareShellScale, p.Position.Len(), 1e-4)
		assert.GreaterOrEqual(t, p.Size, float32(1.5))
		assert.Less(t, p.Size, float32(2.3))
		assert.GreaterOrEqual(t, p.Speed, float32(1.0))
		assert.Less(t, p.Speed, float32(3.0))
		assert.GreaterOrEqual(t, p.Offset, float32(0))
		assert.LessOrEqual(t, p.Offset, 2*math32.Pi)
		assert.GreaterOrEqual(t, p.Activation, float32(0))
		assert.Less(t, p.Activation, float32(1))
	}
}

func TestFlareFieldIsAreaUniform(t *testing.T) {
	const draws = 16000
	field, err := FlareField(NewSource(42), draws, 1)
	require.NoError(t, err)

	azimuth := make([]int, 8)
	height := make([]int, 8)
	for i := 0; i < field.Len(); i++ {
		p := field.At(i).Position.Normalize()
		theta := math32.Atan2(p.Y(), p.X()) + math32.Pi
		azimuth[min(int(theta/(2*math32.Pi)*8), 7)]++
		// equal-height bands of a sphere have equal area
		height[min(int((p.Z()+1)/2*8), 7)]++
	}

	assert.Less(t, chiSquare(azimuth, draws), chi2Critical7, "azimuth bins %v", azimuth)
	assert.Less(t, chiSquare(height, draws), chi2Critical7, "cos(phi) bins %v", height)
}

func TestFlareFieldIsReproducible(t *testing.T) {
	a, err := FlareField(NewSource(7), 10, 2)
	require.NoError(t, err)
	b, err := FlareField(NewSource(7), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestFlareFieldEdgeCases(t *testing.T) {
	empty, err := FlareField(NewSource(1), -5, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Bytes())

	_, err = FlareField(NewSource(1), 10, -1)
	assert.ErrorIs(t, err, ErrNegativeRadius)

	point, err := FlareField(NewSource(1), 3, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(0), point.At(0).Position.Len())
}

func TestTailFieldBounds(t *testing.T) {
	field := TailField(NewSource(3), TailCount)
	require.Equal(t, TailCount, field.Len())

	for i := 0; i < field.Len(); i++ {
		p := field.At(i)
		assert.GreaterOrEqual(t, p.Progress, float32(0))
		assert.Less(t, p.Progress, float32(1))
		assert.LessOrEqual(t, p.Position.Len(), p.Progress*TailSpread+1e-6)
		assert.Equal(t, float32(0), p.Position.Z())
		assert.GreaterOrEqual(t, p.Size, float32(0.3))
		assert.Less(t, p.Size, float32(2.0))

		// alpha = (1-0.6p) * [0.4,1.2)
		fade := 1 - p.Progress*0.6
		assert.GreaterOrEqual(t, p.Alpha, fade*0.4-1e-6)
		assert.Less(t, p.Alpha, fade*1.2+1e-6)
	}
}

func TestTailFieldDenserNearAxis(t *testing.T) {
	const draws = 20000
	field := TailField(NewSource(9), draws)

	// sqrt(u) radius gives uniform density per unit area: r/rmax < 0.5 holds a quarter.
	inner := 0
	for i := 0; i < field.Len(); i++ {
		p := field.At(i)
		if p.Progress == 0 {
			continue
		}
		if p.Position.Len()/(p.Progress*TailSpread) < 0.5 {
			inner++
		}
	}
	assert.InDelta(t, 0.25, float64(inner)/draws, 0.02)
}

func TestTailFieldNegativeCount(t *testing.T) {
	assert.Equal(t, 0, TailField(NewSource(1), -1).Len())
}

func TestUVSphere(t *testing.T) {
	mesh, err := UVSphere(0.08, 12, 12)
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 13*13)
	// two triangles per quad, minus one per quad on each polar row
	assert.Len(t, mesh.Indices, (12*12*2-2*12)*3)
	assert.InDelta(t, 0.08, mesh.Bounds(), 1e-6)

	for _, v := range mesh.Vertices {
		assert.InDelta(t, 1, v.Normal.Len(), 1e-5)
		assert.InDelta(t, 0.08, v.Position.Len(), 1e-6)
	}

	// CCW winding faces outward.
	for i := 0; i < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]].Position
		b := mesh.Vertices[mesh.Indices[i+1]].Position
		c := mesh.Vertices[mesh.Indices[i+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c)
		require.Greater(t, n.Dot(centroid), float32(0), "triangle %d", i/3)
	}
}

func TestUVSphereRejectsBadInput(t *testing.T) {
	_, err := UVSphere(-1, 8, 8)
	assert.ErrorIs(t, err, ErrNegativeRadius)

	_, err = UVSphere(1, 400, 400)
	assert.Error(t, err)

	m, err := UVSphere(1, 0, 0)
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 4*3)
}
