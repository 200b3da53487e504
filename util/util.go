package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// Dedupe keeps the first occurrence of every value.
func Dedupe[A comparable](vals []A) []A {
	seen := make(map[A]bool, len(vals))
	res := make([]A, 0, len(vals))
	for _, v := range vals {
		if seen[v] {
			continue
		}
		seen[v] = true
		res = append(res, v)
	}
	return res
}

func Take[A any](vals []A, n int) []A {
	if len(vals) > n {
		return vals[:n]
	}
	return vals
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}

func ToFloats[A constraints.Integer | constraints.Float](nums []A) []float64 {
	res := make([]float64, len(nums))
	for i, v := range nums {
		res[i] = float64(v)
	}
	return res
}

// RoundTo rounds to the given number of decimals, halves going to even.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*p) / p
}
