package util

import "math"

// Round 四舍五入到指定小数位
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
