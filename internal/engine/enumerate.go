package engine

import (
	"iter"
	"math"
)

// combinations yields every k-subset of 0..n-1 in lexicographic order.
// The yielded slice is reused between iterations.
func combinations(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			if !yield(idx) {
				return
			}
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// permutations yields every ordered selection of k distinct indices from
// 0..n-1 in lexicographic order. The yielded slice is reused between
// iterations.
func permutations(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 || k > n {
			return
		}
		pool := make([]int, n)
		for i := range pool {
			pool[i] = i
		}
		cycles := make([]int, k)
		for i := range cycles {
			cycles[i] = n - i
		}
		out := make([]int, k)

		emit := func() bool {
			copy(out, pool[:k])
			return yield(out)
		}
		if !emit() {
			return
		}
		for {
			i := k - 1
			for ; i >= 0; i-- {
				cycles[i]--
				if cycles[i] == 0 {
					// rotate pool[i:] left by one
					first := pool[i]
					copy(pool[i:], pool[i+1:])
					pool[n-1] = first
					cycles[i] = n - i
					continue
				}
				j := n - cycles[i]
				pool[i], pool[j] = pool[j], pool[i]
				if !emit() {
					return
				}
				break
			}
			if i < 0 {
				return
			}
		}
	}
}

// binomialExceeds reports whether C(n, k) > limit without computing the
// full coefficient.
func binomialExceeds(n, k int, limit int64) bool {
	if k < 0 || k > n {
		return false
	}
	if k > n-k {
		k = n - k
	}
	c := int64(1)
	for i := 0; i < k; i++ {
		// c*(n-i) overflows before the division brings it back down
		if c > math.MaxInt64/int64(n-i) {
			return true
		}
		c = c * int64(n-i) / int64(i+1)
		if c > limit {
			return true
		}
	}
	return c > limit
}
