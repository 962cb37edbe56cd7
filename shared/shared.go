package shared

import (
	"math"
	"strings"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// Paginate slices a full in-memory result set down to one page. The stores
// always load whole files, so pagination happens after the fact.
func Paginate[T any](records []T, page, limit int) []T {
	if limit <= 0 {
		return records
	}

	if page <= 0 {
		page = 1
	}

	start := (page - 1) * limit
	if start >= len(records) {
		return []T{}
	}

	end := start + limit
	if end > len(records) {
		end = len(records)
	}

	return records[start:end]
}

func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}
