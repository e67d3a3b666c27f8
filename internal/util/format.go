package util

import "fmt"

const decimalValue = 100

// FormatMoney renders minor units with two decimals, e.g. 10050 -> "100.50".
func FormatMoney(value int64) string {
	var isNegative bool

	if value < 0 {
		value *= -1
		isNegative = true
	}

	result := fmt.Sprintf("%d.%02d", value/decimalValue, value%decimalValue)

	if isNegative {
		return "-" + result
	}

	return result
}
