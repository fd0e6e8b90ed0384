/*------------------------------------------------------------------------------
* ionolab unit test driver : glonass broadcast navigation parser
*-----------------------------------------------------------------------------*/
package ionolab_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ionolab"
)

func gloRecord(prn int, hour, min string, frq string) string {
	p := " "
	if prn >= 10 {
		p = ""
	}
	return p + itoa(prn) + " 21  1  1  " + hour + " " + min + "  0.0-1.862645149231D-09 0.000000000000D+00 9.000000000000D+02\n" +
		"    2.550800000000D+04 0.000000000000D+00 0.000000000000D+00 0.000000000000D+00\n" +
		"    0.000000000000D+00 2.000000000000D+00 0.000000000000D+00 " + frq + "\n" +
		"    0.000000000000D+00 0.000000000000D+00 0.000000000000D+00 0.000000000000D+00\n"
}

func itoa(v int) string {
	if v >= 10 {
		return string(rune('0'+v/10)) + string(rune('0'+v%10))
	}
	return string(rune('0' + v))
}

/* ParseGloNav(): complete records with glued D-exponent fields */
func Test_glonavutest1(t *testing.T) {
	assert := assert.New(t)

	text := "     2.10           GLONASS NAV DATA                RINEX VERSION / TYPE\n" +
		"                                                    END OF HEADER\n" +
		gloRecord(3, " 0", "15", "5.000000000000D+00") +
		gloRecord(3, " 0", "45", "5.000000000000D+00") +
		gloRecord(11, " 1", "15", "2.550000000000D+02")

	sats, sum, err := ionolab.ParseGloNav(text)
	assert.Nil(err)
	assert.Equal(3, sum.Records)
	assert.Equal(0, sum.SkippedRecords)
	assert.Equal(2, len(sats[3]))
	assert.Equal(1, len(sats[11]))

	eph := sats[3][0]
	assert.Equal(time.Date(2021, 1, 1, 0, 15, 0, 0, time.UTC), eph.Time)
	assert.InEpsilon(1.862645149231e-09, eph.TauN, 1e-12)
	assert.Equal(0.0, eph.GamN)
	assert.Equal(900.0, eph.Tk)
	assert.Equal(25508.0, eph.Pos[0])
	assert.Equal(2.0, eph.Vel[1])
	assert.Equal(0, eph.Svh)
	assert.Equal(5, eph.Frq)
	assert.Equal(0, eph.Age)

	/* 255 encodes frequency number -1 */
	assert.Equal(-1, sats[11][0].Frq)

	/* derived geodetic position of a point on the +x axis */
	assert.InDelta(0.0, eph.Lat, 1e-9)
	assert.InDelta(0.0, eph.Lon, 1e-9)
	assert.InDelta(25508.0-ionolab.RE_PZ90/1000.0, eph.Hgt, 1e-6)
}

/* ParseGloNav(): a record missing its last data line is skipped, not fatal */
func Test_glonavutest2(t *testing.T) {
	assert := assert.New(t)

	truncated := " 5 21  1  1  0 15  0.0 0.000000000000D+00 0.000000000000D+00 9.000000000000D+02\n" +
		"    2.550800000000D+04 0.000000000000D+00 0.000000000000D+00 0.000000000000D+00\n" +
		"    0.000000000000D+00 2.000000000000D+00 0.000000000000D+00 5.000000000000D+00\n"

	text := "                                                    END OF HEADER\n" +
		gloRecord(3, " 0", "15", "5.000000000000D+00") +
		truncated +
		gloRecord(7, " 0", "15", "3.000000000000D+00")

	sats, sum, err := ionolab.ParseGloNav(text)
	assert.Nil(err)
	assert.Equal(2, sum.Records)
	assert.Equal(1, sum.SkippedRecords)
	assert.Equal(1, len(sats[3]))
	assert.Equal(1, len(sats[7]))
	assert.Empty(sats[5])

	/* the record after the truncated one decoded intact */
	assert.Equal(3, sats[7][0].Frq)
	assert.Equal(time.Date(2021, 1, 1, 0, 15, 0, 0, time.UTC), sats[7][0].Time)
}

/* ParseGloNav(): per-prn sequences come back time ordered */
func Test_glonavutest3(t *testing.T) {
	assert := assert.New(t)

	text := "                                                    END OF HEADER\n" +
		gloRecord(9, " 2", "15", "1.000000000000D+00") +
		gloRecord(9, " 0", "15", "1.000000000000D+00") +
		gloRecord(9, " 1", "15", "1.000000000000D+00")

	sats, sum, err := ionolab.ParseGloNav(text)
	assert.Nil(err)
	assert.Equal(3, sum.Records)
	assert.Equal(3, len(sats[9]))
	for i := 1; i < len(sats[9]); i++ {
		assert.True(sats[9][i-1].Time.Before(sats[9][i].Time))
	}
}
