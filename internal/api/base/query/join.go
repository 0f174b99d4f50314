package basequery

// OrderedJoin sắp xếp rows theo đúng thứ tự ids. Id không có row tương ứng bị bỏ,
// id trùng chỉ lấy một lần.
func OrderedJoin[K comparable, V any](ids []K, rows []V, key func(V) K) []V {
	return OrderedJoinWith(ids, func(k K) K { return k }, rows, key, func(_ K, v V) V { return v })
}

// OrderedJoinWith ghép bảng xếp hạng với rows lấy theo tập id, giữ thứ tự xếp hạng,
// rồi merge từng cặp thành kết quả.
func OrderedJoinWith[K comparable, R any, V any, O any](
	ranked []R,
	rankKey func(R) K,
	rows []V,
	rowKey func(V) K,
	merge func(R, V) O,
) []O {
	byKey := make(map[K]V, len(rows))
	for _, row := range rows {
		byKey[rowKey(row)] = row
	}

	out := make([]O, 0, len(ranked))
	seen := make(map[K]bool, len(ranked))
	for _, r := range ranked {
		k := rankKey(r)
		if seen[k] {
			continue
		}
		row, ok := byKey[k]
		if !ok {
			continue
		}
		seen[k] = true
		out = append(out, merge(r, row))
	}
	return out
}
