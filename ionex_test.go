/*------------------------------------------------------------------------------
* ionolab unit test driver : ionex tec grid parser
*-----------------------------------------------------------------------------*/
package ionolab_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ionolab"
)

/* lab dialect: bare glued row headers, 3x3 grid filled with one value */
func ionexFlat3x3(v1, v2 string) string {
	row := func(lat string, v string) string {
		return lat + "-180.0 180.0 180.0 450.0\n" + v + " " + v + " " + v + "\n"
	}
	mapBlock := func(epoch, v string) string {
		return "                        START OF TEC MAP\n" +
			epoch + "\n" +
			row("90.0", v) + row("0.0", v) + row("-90.0", v) +
			"                        END OF TEC MAP\n"
	}
	return "     1.0            IONOSPHERE MAPS      IONEX VERSION / TYPE\n" +
		"  2021     1     1     0     0     0        EPOCH OF FIRST MAP\n" +
		"  3600                                      INTERVAL\n" +
		"     2                                      # OF MAPS IN FILE\n" +
		"     0                                      EXPONENT\n" +
		"  6371.0                                    BASE RADIUS\n" +
		"    90.0 -90.0 -90.0                        LAT1 / LAT2 / DLAT\n" +
		"  -180.0 180.0 180.0                        LON1 / LON2 / DLON\n" +
		"   450.0 450.0   0.0                        HGT1 / HGT2 / DHGT\n" +
		"                                            END OF HEADER\n" +
		mapBlock("  2021     1     1     0     0     0", v1) +
		mapBlock("  2021     1     1     1     0     0", v2)
}

/* ParseIonex(): header fields and grid shape */
func Test_ionexutest1(t *testing.T) {
	assert := assert.New(t)

	hdr, grids, sum, err := ionolab.ParseIonex(ionexFlat3x3("20.0", "20.0"))
	assert.Nil(err)
	assert.Equal(3, hdr.Nlat())
	assert.Equal(3, hdr.Nlon())
	assert.Equal(2, hdr.NMaps)
	assert.Equal(3600.0, hdr.Interval)
	assert.Equal(450.0, hdr.Hgts[0])
	assert.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), hdr.Epoch)

	assert.Equal(2, len(grids))
	assert.Equal(0, sum.SkippedRows)
	for _, g := range grids {
		assert.Equal(3, len(g.Data))
		for _, r := range g.Data {
			assert.Equal(3, len(r))
			for _, v := range r {
				assert.Equal(20.0, v)
			}
		}
	}
	assert.Equal(time.Date(2021, 1, 1, 1, 0, 0, 0, time.UTC), grids[1].Time)
}

/* ParseIonex(): 5x5 grid, data rows wrapped over two lines */
func Test_ionexutest2(t *testing.T) {
	assert := assert.New(t)

	var b strings.Builder
	b.WriteString("    60.0 -60.0 -30.0                        LAT1 / LAT2 / DLAT\n")
	b.WriteString("  -180.0 180.0  90.0                        LON1 / LON2 / DLON\n")
	b.WriteString("     0                                      EXPONENT\n")
	b.WriteString("     2                                      # OF MAPS IN FILE\n")
	b.WriteString("                                            END OF HEADER\n")
	for m := 0; m < 2; m++ {
		b.WriteString("                        START OF TEC MAP\n")
		b.WriteString(fmt.Sprintf("  2021     1     1     %d     0     0\n", m*2))
		for i := 0; i < 5; i++ {
			lat := 60.0 - 30.0*float64(i)
			b.WriteString(fmt.Sprintf("  %.1f-180.0 180.0  90.0 450.0\n", lat))
			b.WriteString("  1.0  2.0  3.0\n")
			b.WriteString("  4.0  5.0\n")
		}
		b.WriteString("                        END OF TEC MAP\n")
	}

	hdr, grids, sum, err := ionolab.ParseIonex(b.String())
	assert.Nil(err)
	assert.Equal(5, hdr.Nlat())
	assert.Equal(5, hdr.Nlon())
	assert.Equal(2, len(grids))
	assert.Equal(0, sum.SkippedRows)
	assert.Equal(5.0, grids[0].Data[0][4])
	assert.Equal(1.0, grids[1].Data[4][0])
}

/* ParseIonex(): 9999 sentinel maps to NaN, exponent scales values */
func Test_ionexutest3(t *testing.T) {
	assert := assert.New(t)

	text := "    90.0 -90.0 -90.0                        LAT1 / LAT2 / DLAT\n" +
		"  -180.0 180.0 180.0                        LON1 / LON2 / DLON\n" +
		"    -1                                      EXPONENT\n" +
		"                                            END OF HEADER\n" +
		"                        START OF TEC MAP\n" +
		"  2021     1     1     0     0     0\n" +
		"90.0-180.0 180.0 180.0 450.0\n" +
		"  100  9999  300\n" +
		"0.0-180.0 180.0 180.0 450.0\n" +
		"  100  200  300\n" +
		"-90.0-180.0 180.0 180.0 450.0\n" +
		"  100  200  300\n" +
		"                        END OF TEC MAP\n"

	_, grids, _, err := ionolab.ParseIonex(text)
	assert.Nil(err)
	assert.Equal(1, len(grids))
	assert.Equal(10.0, grids[0].Data[0][0])
	assert.True(math.IsNaN(grids[0].Data[0][1]))
	assert.Equal(30.0, grids[0].Data[0][2])
}

/* ParseIonex(): missing latitude range in header */
func Test_ionexutest4(t *testing.T) {
	assert := assert.New(t)

	text := "  -180.0 180.0 180.0                        LON1 / LON2 / DLON\n" +
		"                                            END OF HEADER\n"
	_, _, _, err := ionolab.ParseIonex(text)
	assert.True(errors.Is(err, ionolab.ErrHeaderIncomplete))
}

/* ParseIonex(): short data row is skipped, rest of the map survives */
func Test_ionexutest5(t *testing.T) {
	assert := assert.New(t)

	text := "    90.0 -90.0 -90.0                        LAT1 / LAT2 / DLAT\n" +
		"  -180.0 180.0 180.0                        LON1 / LON2 / DLON\n" +
		"     0                                      EXPONENT\n" +
		"                                            END OF HEADER\n" +
		"                        START OF TEC MAP\n" +
		"  2021     1     1     0     0     0\n" +
		"90.0-180.0 180.0 180.0 450.0\n" +
		"  1.0  2.0\n" +
		"0.0-180.0 180.0 180.0 450.0\n" +
		"  4.0  5.0  6.0\n" +
		"-90.0-180.0 180.0 180.0 450.0\n" +
		"  7.0  8.0  9.0\n" +
		"                        END OF TEC MAP\n"

	_, grids, sum, err := ionolab.ParseIonex(text)
	assert.Nil(err)
	assert.Equal(1, len(grids))
	assert.Equal(1, sum.SkippedRows)
	assert.True(math.IsNaN(grids[0].Data[0][0]))
	assert.Equal(5.0, grids[0].Data[1][1])
	assert.Equal(9.0, grids[0].Data[2][2])
}

/* VtecAt(): linear interpolation between bracketing maps */
func Test_ionexutest6(t *testing.T) {
	assert := assert.New(t)

	hdr, grids, _, err := ionolab.ParseIonex(ionexFlat3x3("10.0", "30.0"))
	assert.Nil(err)

	v, err := ionolab.VtecAt(hdr, grids,
		time.Date(2021, 1, 1, 0, 30, 0, 0, time.UTC), 0.0, 0.0)
	assert.Nil(err)
	assert.InEpsilon(20.0, v, 1e-12)

	v, err = ionolab.VtecAt(hdr, grids,
		time.Date(2021, 1, 1, 1, 0, 0, 0, time.UTC), 45.0, 90.0)
	assert.Nil(err)
	assert.InEpsilon(30.0, v, 1e-12)

	_, err = ionolab.VtecAt(hdr, grids,
		time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), 0.0, 0.0)
	assert.True(errors.Is(err, ionolab.ErrOutOfCoverage))
}
