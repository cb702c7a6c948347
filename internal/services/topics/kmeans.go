package topics

import (
	"math"
	"math/rand"
)

const (
	kmeansSeed     = 42
	kmeansInits    = 10
	kmeansMaxIters = 300
)

// kmeans clusters the rows of matrix into k groups. It runs several k-means++
// seeded initializations from a fixed seed and keeps the assignment with the
// lowest inertia, so results are deterministic for a given input.
func kmeans(matrix [][]float64, k int) []int {
	n := len(matrix)
	if n == 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}

	rng := rand.New(rand.NewSource(kmeansSeed))

	bestInertia := math.Inf(1)
	var bestLabels []int

	for init := 0; init < kmeansInits; init++ {
		centroids := seedCentroids(matrix, k, rng)
		labels := make([]int, n)

		for iter := 0; iter < kmeansMaxIters; iter++ {
			changed := false
			for i, row := range matrix {
				best := nearestCentroid(row, centroids)
				if best != labels[i] {
					labels[i] = best
					changed = true
				}
			}

			centroids = recomputeCentroids(matrix, labels, k)
			if !changed && iter > 0 {
				break
			}
		}

		inertia := 0.0
		for i, row := range matrix {
			inertia += squaredDistance(row, centroids[labels[i]])
		}
		if inertia < bestInertia {
			bestInertia = inertia
			bestLabels = labels
		}
	}

	return bestLabels
}

// seedCentroids picks initial centroids with the k-means++ scheme: the first
// uniformly, the rest weighted by squared distance to the nearest chosen one.
func seedCentroids(matrix [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(matrix)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, cloneRow(matrix[rng.Intn(n)]))

	distances := make([]float64, n)
	for len(centroids) < k {
		var total float64
		for i, row := range matrix {
			d := math.Inf(1)
			for _, c := range centroids {
				if dd := squaredDistance(row, c); dd < d {
					d = dd
				}
			}
			distances[i] = d
			total += d
		}

		if total == 0 {
			centroids = append(centroids, cloneRow(matrix[rng.Intn(n)]))
			continue
		}

		target := rng.Float64() * total
		var cumulative float64
		chosen := n - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, cloneRow(matrix[chosen]))
	}

	return centroids
}

func nearestCentroid(row []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for j, c := range centroids {
		if d := squaredDistance(row, c); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

func recomputeCentroids(matrix [][]float64, labels []int, k int) [][]float64 {
	dim := len(matrix[0])
	centroids := make([][]float64, k)
	counts := make([]int, k)
	for j := range centroids {
		centroids[j] = make([]float64, dim)
	}
	for i, row := range matrix {
		c := centroids[labels[i]]
		for d, v := range row {
			c[d] += v
		}
		counts[labels[i]]++
	}
	for j, c := range centroids {
		if counts[j] == 0 {
			continue
		}
		for d := range c {
			c[d] /= float64(counts[j])
		}
	}
	return centroids
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func cloneRow(row []float64) []float64 {
	out := make([]float64, len(row))
	copy(out, row)
	return out
}
