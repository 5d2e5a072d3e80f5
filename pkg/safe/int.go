package safe

import (
	"fmt"
	"math"
)

// AddInt64 returns a+b, failing instead of wrapping around on overflow.
func AddInt64(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("int64 overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// SubInt64 returns a-b, failing instead of wrapping around on overflow.
func SubInt64(a, b int64) (int64, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, fmt.Errorf("int64 overflow: %d - %d", a, b)
	}
	return a - b, nil
}

// Int64 converts unsigned integers to int64 with range validation.
func Int64[T ~uint | ~uint32 | ~uint64](v T) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}
