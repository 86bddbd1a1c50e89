package viewmodels

import "strconv"

const badgeCap = 99

// Badge is the bell label: empty for zero, the count up to 99, then "99+".
func Badge(count int) string {
	switch {
	case count <= 0:
		return ""
	case count > badgeCap:
		return strconv.Itoa(badgeCap) + "+"
	default:
		return strconv.Itoa(count)
	}
}
