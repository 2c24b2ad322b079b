package textvec

import "math"

// Vector is a sparse term-weight vector. Indices are strictly increasing.
type Vector struct {
	indices []int
	values  []float64
}

// NewVector builds a Vector from parallel index/value slices sorted by index.
func NewVector(indices []int, values []float64) Vector {
	return Vector{
		indices: append([]int(nil), indices...),
		values:  append([]float64(nil), values...),
	}
}

// Len returns the number of non-zero entries.
func (v Vector) Len() int { return len(v.indices) }

// IsZero reports whether the vector has no non-zero entry.
func (v Vector) IsZero() bool { return len(v.indices) == 0 }

// Weight returns the weight stored for a vocabulary index, 0 when absent.
func (v Vector) Weight(index int) float64 {
	lo, hi := 0, len(v.indices)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case v.indices[mid] == index:
			return v.values[mid]
		case v.indices[mid] < index:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Dot returns the inner product of two sparse vectors.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.indices) && j < len(o.indices) {
		switch {
		case v.indices[i] == o.indices[j]:
			sum += v.values[i] * o.values[j]
			i++
			j++
		case v.indices[i] < o.indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean length.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// normalized returns an L2-normalized copy; zero vectors are returned as is.
func (v Vector) normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	values := make([]float64, len(v.values))
	for i, x := range v.values {
		values[i] = x / n
	}
	return Vector{indices: v.indices, values: values}
}
