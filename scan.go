/*------------------------------------------------------------------------------
* scan.go : fixed-format numeric token scanner
*
* notes  : ionex/glonass lab files glue adjacent columns together when a value
*          is wide enough ("87.5-180.0") and use fortran D exponents
*          ("-.123456D+04-.654321D-05"); the scanner recovers the individual
*          tokens from both cases
*-----------------------------------------------------------------------------*/

package ionolab

import (
	"math"
	"strconv"
	"strings"
)

/* true if c may end a number and be followed by the sign of a glued token */
func glueBoundary(prev byte) bool {
	return (prev >= '0' && prev <= '9') || prev == '.'
}

func expMarker(c byte) bool {
	return c == 'D' || c == 'd' || c == 'E' || c == 'e'
}

/* split one whitespace field at glued-sign boundaries -----------------------*/
func splitGlued(field string) []string {
	var parts []string
	start := 0
	for i := 1; i < len(field); i++ {
		c := field[i]
		if c != '+' && c != '-' {
			continue
		}
		/* a sign right after an exponent marker belongs to the exponent */
		if expMarker(field[i-1]) {
			continue
		}
		if glueBoundary(field[i-1]) {
			parts = append(parts, field[start:i])
			start = i
		}
	}
	parts = append(parts, field[start:])
	return parts
}

var expReplacer = strings.NewReplacer("d", "e", "D", "E")

/* extract numeric tokens from a line ------------------------------------------
* split a text line into float tokens, handling sign-glued columns and
* D-exponent scientific notation
* args   : string line      I   text line
* return : tokens, count of numeric-looking tokens that failed to parse
* notes  : non-numeric words (labels) are skipped without a warning; a blank
*          or label-only line yields an empty slice. never panics
*-----------------------------------------------------------------------------*/
func ExtractNumbers(line string) ([]float64, int) {
	var (
		vals  []float64
		nwarn int
	)
	for _, field := range strings.Fields(line) {
		for _, tok := range splitGlued(field) {
			v, err := strconv.ParseFloat(expReplacer.Replace(tok), 64)
			if err == nil {
				/* ParseFloat accepts the words "nan" and "inf"; fixed-format
				 * files never carry them as data */
				if !math.IsNaN(v) && !math.IsInf(v, 0) {
					vals = append(vals, v)
				}
				continue
			}
			c := tok[0]
			if (c >= '0' && c <= '9') || c == '+' || c == '-' || c == '.' {
				nwarn++
			}
		}
	}
	return vals, nwarn
}
