package validation

import (
	"regexp"
	"strconv"
)

var (
	exactExpr   = regexp.MustCompile(`^[0-9]+$`)
	compareExpr = regexp.MustCompile(`^(>=?|<=?)([0-9]+)$`)
	rangeExpr   = regexp.MustCompile(`^([0-9]+)-([0-9]+)$`)
)

// CountCheck reports whether n satisfies a count expression:
//
//	"5"     exactly 5
//	"<10"   also <=, > and >=
//	"3-5"   inclusive range
//
// Anything else is unsatisfiable.
func CountCheck(n int, expr string) bool {
	switch {
	case exactExpr.MatchString(expr):
		want, err := strconv.Atoi(expr)
		return err == nil && n == want
	case compareExpr.MatchString(expr):
		m := compareExpr.FindStringSubmatch(expr)
		bound, err := strconv.Atoi(m[2])
		if err != nil {
			return false
		}
		switch m[1] {
		case "<":
			return n < bound
		case "<=":
			return n <= bound
		case ">":
			return n > bound
		case ">=":
			return n >= bound
		}
	case rangeExpr.MatchString(expr):
		m := rangeExpr.FindStringSubmatch(expr)
		lo, errLo := strconv.Atoi(m[1])
		hi, errHi := strconv.Atoi(m[2])
		return errLo == nil && errHi == nil && n >= lo && n <= hi
	}
	return false
}
