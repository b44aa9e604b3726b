package mahalanobis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allMethods = []Method{MethodRandom, MethodSystematic, MethodCluster}

func TestSubsample_IdentityWhenNoTarget(t *testing.T) {
	data := generateIndexedData(20, 2)
	rng := rand.New(rand.NewSource(1))

	for _, m := range allMethods {
		for _, target := range []int{0, -5, len(data), len(data) + 10} {
			got := Subsample(data, target, m, rng)
			require.Len(t, got, len(data), "method=%s target=%d", m, target)
			assert.Same(t, &data[0][0], &got[0][0], "method=%s target=%d should return the input slice", m, target)
			assert.Equal(t, data, got)
		}
	}
}

func TestSubsample_UnknownMethodIsIdentity(t *testing.T) {
	data := generateIndexedData(20, 2)
	got := Subsample(data, 5, Method("bogus"), nil)
	assert.Equal(t, data, got)
}

func TestSubsample_NilRNG(t *testing.T) {
	data := generateIndexedData(200, 2)
	got := Subsample(data, 20, MethodRandom, nil)
	assert.Len(t, got, 20)
}

func TestSubsampleRandom_NilRNG(t *testing.T) {
	data := generateBenchData(100, 2)
	var got [][]float64
	require.NotPanics(t, func() { got = SubsampleRandom(data, 10, nil) })
	assert.Len(t, got, 10)
}

func TestSubsampleCluster_NilRNG(t *testing.T) {
	data := generateIndexedData(1000, 2)
	var got [][]float64
	require.NotPanics(t, func() { got = SubsampleCluster(data, 100, nil) })
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 100)
}

func TestSubsample_DoesNotMutateInput(t *testing.T) {
	data := generateIndexedData(500, 3)
	rng := rand.New(rand.NewSource(3))
	for _, m := range allMethods {
		Subsample(data, 100, m, rng)
	}
	for i, p := range data {
		require.Equal(t, float64(i), p[0], "input order changed at %d", i)
	}
}

func TestSubsampleRandom_SizeAndMembership(t *testing.T) {
	data := generateIndexedData(300, 2)
	got := SubsampleRandom(data, 50, rand.New(rand.NewSource(9)))
	require.Len(t, got, 50)

	seen := make(map[int]bool)
	for _, p := range got {
		idx := int(p[0])
		require.True(t, idx >= 0 && idx < len(data))
		assert.Same(t, &data[idx][0], &p[0], "row %d is not an input row", idx)
		assert.False(t, seen[idx], "index %d drawn twice", idx)
		seen[idx] = true
	}
}

func TestSubsampleRandom_Reproducible(t *testing.T) {
	data := generateIndexedData(300, 2)
	a := SubsampleRandom(data, 40, rand.New(rand.NewSource(11)))
	b := SubsampleRandom(data, 40, rand.New(rand.NewSource(11)))
	assert.Equal(t, a, b)
}

func TestSubsampleRandom_Uniform(t *testing.T) {
	// Every element should be drawn with probability target/n.
	n, target, trials := 10, 3, 20000
	data := generateIndexedData(n, 1)
	rng := rand.New(rand.NewSource(5))

	counts := make([]int, n)
	for i := 0; i < trials; i++ {
		for _, p := range SubsampleRandom(data, target, rng) {
			counts[int(p[0])]++
		}
	}

	expected := float64(trials*target) / float64(n)
	for i, c := range counts {
		assert.InDelta(t, expected, float64(c), expected*0.05, "index %d drawn %d times", i, c)
	}
}

func TestSubsampleSystematic_1000To100(t *testing.T) {
	data := generateIndexedData(1000, 2)
	got := SubsampleSystematic(data, 100)
	require.Len(t, got, 100)
	for i, p := range got {
		assert.Equal(t, float64(i*10), p[0], "position %d", i)
	}
}

func TestSubsampleSystematic_UnevenStride(t *testing.T) {
	tests := []struct {
		n, target int
		want      []float64
	}{
		{10, 3, []float64{0, 3, 6}},
		{10, 4, []float64{0, 2, 4, 6}},
		{7, 6, []float64{0, 1, 2, 3, 4, 5}},
		{11, 2, []float64{0, 5}},
	}
	for _, tt := range tests {
		data := generateIndexedData(tt.n, 1)
		got := SubsampleSystematic(data, tt.target)
		require.Len(t, got, tt.target, "n=%d target=%d", tt.n, tt.target)
		for i, p := range got {
			assert.Equal(t, tt.want[i], p[0], "n=%d target=%d position %d", tt.n, tt.target, i)
		}
	}
}

func TestSubsampleSystematic_Deterministic(t *testing.T) {
	data := generateIndexedData(997, 3)
	a := Subsample(data, 123, MethodSystematic, rand.New(rand.NewSource(1)))
	b := Subsample(data, 123, MethodSystematic, rand.New(rand.NewSource(2)))
	assert.Equal(t, a, b)
}

func TestSubsampleCluster_TooSmallTargetIsEmpty(t *testing.T) {
	data := generateIndexedData(1000, 2)
	for _, target := range []int{1, 40, 49} {
		got := Subsample(data, target, MethodCluster, rand.New(rand.NewSource(1)))
		assert.NotNil(t, got)
		assert.Empty(t, got, "target=%d", target)
	}
}

func TestSubsampleCluster_NeverExceedsTarget(t *testing.T) {
	data := generateBenchData(1000, 3)
	for _, target := range []int{50, 99, 200, 333, 600, 999} {
		got := SubsampleCluster(data, target, rand.New(rand.NewSource(int64(target))))
		assert.LessOrEqual(t, len(got), target, "target=%d", target)
		assert.NotEmpty(t, got, "target=%d", target)
	}
}

func TestSubsampleCluster_MembersComeFromInput(t *testing.T) {
	data := generateIndexedData(800, 3)
	got := SubsampleCluster(data, 400, rand.New(rand.NewSource(4)))

	seen := make(map[int]bool)
	for _, p := range got {
		idx := int(p[0])
		require.True(t, idx >= 0 && idx < len(data))
		assert.Same(t, &data[idx][0], &p[0])
		assert.False(t, seen[idx], "index %d drawn twice", idx)
		seen[idx] = true
	}
}

func TestSubsampleCluster_ProportionalQuotas(t *testing.T) {
	// target 100 gives k = 2 centers: data[0] near the origin and data[1]
	// near (100, 100). 300 points join the first, 100 the second.
	data := [][]float64{{0, 0}, {100, 100}}
	for i := 0; i < 299; i++ {
		data = append(data, []float64{float64(i%10) * 0.1, float64(i%7) * 0.1})
	}
	for i := 0; i < 99; i++ {
		data = append(data, []float64{100 + float64(i%5)*0.1, 100 - float64(i%3)*0.1})
	}
	require.Len(t, data, 400)

	got := SubsampleCluster(data, 100, rand.New(rand.NewSource(8)))
	require.Len(t, got, 100) // 300*100/400 + 100*100/400

	for i, p := range got {
		if i < 75 {
			assert.Less(t, p[0], 50.0, "position %d should come from the first cluster", i)
		} else {
			assert.Greater(t, p[0], 50.0, "position %d should come from the second cluster", i)
		}
	}
}

func TestSubsampleCluster_FloorRoundingUndershoots(t *testing.T) {
	// target 100 gives k = 2 centers, (0,0) and (0,1). They collect 4 and 297
	// points, so the floored quotas are 1 and 98.
	data := make([][]float64, 0, 301)
	for c := 0; c < 3; c++ {
		for i := 0; i < 100; i++ {
			data = append(data, []float64{float64(c) * 1000, float64(i)})
		}
	}
	data = append(data, []float64{5000, 0})

	got := SubsampleCluster(data, 100, rand.New(rand.NewSource(2)))
	assert.Len(t, got, 99)
}

func TestNearestCenter_TiesGoToLowestIndex(t *testing.T) {
	centers := [][]float64{{-1, 0}, {1, 0}, {0, 5}}
	assert.Equal(t, 0, nearestCenter([]float64{0, 0}, centers))
	assert.Equal(t, 1, nearestCenter([]float64{0.5, 0}, centers))
	assert.Equal(t, 2, nearestCenter([]float64{0, 4}, centers))
}

func TestParseMethod(t *testing.T) {
	for _, m := range allMethods {
		got, err := ParseMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMethod("stratified")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
