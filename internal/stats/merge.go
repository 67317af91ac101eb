package stats

// Merge returns the ascending merge of two ascending sequences. Neither input
// is modified. On ties the element from a is emitted first, so the merge is
// stable and duplicates are kept.
func Merge[T any](a, b []T, order Comparator[T]) []T {
	out := make([]T, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if order(b[j], a[i]) < 0 {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// MergeAll merges any number of ascending runs into one ascending sequence.
// Runs are merged pairwise so the total cost stays O(n log k).
func MergeAll[T any](runs [][]T, order Comparator[T]) []T {
	switch len(runs) {
	case 0:
		return []T{}
	case 1:
		return append([]T(nil), runs[0]...)
	}
	for len(runs) > 1 {
		next := make([][]T, 0, (len(runs)+1)/2)
		for i := 0; i < len(runs); i += 2 {
			if i+1 == len(runs) {
				next = append(next, runs[i])
				continue
			}
			next = append(next, Merge(runs[i], runs[i+1], order))
		}
		runs = next
	}
	return runs[0]
}
