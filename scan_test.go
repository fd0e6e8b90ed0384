/*------------------------------------------------------------------------------
* ionolab unit test driver : fixed-format numeric scanner
*-----------------------------------------------------------------------------*/
package ionolab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ionolab"
)

/* ExtractNumbers(): glued sign tokens */
func Test_scanutest1(t *testing.T) {
	assert := assert.New(t)

	vals, nwarn := ionolab.ExtractNumbers("87.5-180.0 180.0 5.0 450.0")
	assert.Equal([]float64{87.5, -180.0, 180.0, 5.0, 450.0}, vals)
	assert.Equal(0, nwarn)

	vals, _ = ionolab.ExtractNumbers("-87.5-180.0")
	assert.Equal([]float64{-87.5, -180.0}, vals)

	vals, _ = ionolab.ExtractNumbers("12.3+4.5-6.7")
	assert.Equal([]float64{12.3, 4.5, -6.7}, vals)
}

/* ExtractNumbers(): D exponent tokens, glued and separate */
func Test_scanutest2(t *testing.T) {
	assert := assert.New(t)

	vals, nwarn := ionolab.ExtractNumbers(" -.123456D+04 .654321D-05")
	assert.Equal(2, len(vals))
	assert.Equal(0, nwarn)
	assert.InEpsilon(-1234.56, vals[0], 1e-9)
	assert.InEpsilon(6.54321e-6, vals[1], 1e-9)

	vals, _ = ionolab.ExtractNumbers("-.123456D+04-.654321D-05")
	assert.Equal(2, len(vals))
	assert.InEpsilon(-1234.56, vals[0], 1e-9)
	assert.InEpsilon(-6.54321e-6, vals[1], 1e-9)

	vals, _ = ionolab.ExtractNumbers(" .931323000000D-09 1.5e3")
	assert.Equal(2, len(vals))
	assert.InEpsilon(9.31323e-10, vals[0], 1e-9)
	assert.Equal(1500.0, vals[1])
}

/* ExtractNumbers(): blank, label and malformed input */
func Test_scanutest3(t *testing.T) {
	assert := assert.New(t)

	vals, nwarn := ionolab.ExtractNumbers("")
	assert.Equal(0, len(vals))
	assert.Equal(0, nwarn)

	vals, nwarn = ionolab.ExtractNumbers("LAT1 / LAT2 / DLAT")
	assert.Equal(0, len(vals))
	assert.Equal(0, nwarn)

	/* header line: label words skipped silently, values kept */
	vals, nwarn = ionolab.ExtractNumbers("  -90.0  90.0  90.0   LAT1 / LAT2 / DLAT")
	assert.Equal([]float64{-90.0, 90.0, 90.0}, vals)
	assert.Equal(0, nwarn)

	/* numeric-looking garbage is skipped but counted */
	vals, nwarn = ionolab.ExtractNumbers("1.2 3..4 5.6")
	assert.Equal(2, len(vals))
	assert.Equal(1.2, vals[0])
	assert.Equal(5.6, vals[1])
	assert.True(nwarn > 0)

	/* ParseFloat would accept these words; the scanner must not */
	vals, _ = ionolab.ExtractNumbers("nan inf -inf")
	assert.Equal(0, len(vals))
}
