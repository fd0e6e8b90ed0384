/*------------------------------------------------------------------------------
* ionolab unit test driver : bilinear grid sampling
*-----------------------------------------------------------------------------*/
package ionolab_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"ionolab"
)

func planeGrid() ([][]float64, ionolab.GridAxis, ionolab.GridAxis) {
	/* v = 2*lat + lon on a 3x3 grid, lat 0..20 step 10, lon 0..20 step 10 */
	latAx := ionolab.GridAxis{Start: 0.0, Step: 10.0, N: 3}
	lonAx := ionolab.GridAxis{Start: 0.0, Step: 10.0, N: 3}
	grid := make([][]float64, 3)
	for i := range grid {
		grid[i] = make([]float64, 3)
		for j := range grid[i] {
			grid[i][j] = 2.0*(10.0*float64(i)) + 10.0*float64(j)
		}
	}
	return grid, latAx, lonAx
}

/* ionolab.BilinearSample(): exact on nodes and linear surfaces */
func Test_interputest1(t *testing.T) {
	assert := assert.New(t)
	grid, latAx, lonAx := planeGrid()

	assert.Equal(0.0, ionolab.BilinearSample(grid, latAx, lonAx, 0.0, 0.0))
	assert.Equal(50.0, ionolab.BilinearSample(grid, latAx, lonAx, 20.0, 10.0))
	assert.InEpsilon(2.0*15.0+5.0, ionolab.BilinearSample(grid, latAx, lonAx, 15.0, 5.0), 1e-12)
	assert.InEpsilon(2.0*7.5+12.5, ionolab.BilinearSample(grid, latAx, lonAx, 7.5, 12.5), 1e-12)
}

/* ionolab.BilinearSample(): out-of-range queries clamp to edge values */
func Test_interputest2(t *testing.T) {
	assert := assert.New(t)
	grid, latAx, lonAx := planeGrid()

	assert.Equal(grid[0][0], ionolab.BilinearSample(grid, latAx, lonAx, -5.0, -5.0))
	assert.Equal(grid[2][2], ionolab.BilinearSample(grid, latAx, lonAx, 100.0, 100.0))
}

/* ionolab.BilinearSample(): no-data corners */
func Test_interputest3(t *testing.T) {
	assert := assert.New(t)
	grid, latAx, lonAx := planeGrid()

	/* one NaN corner: nearest valid corner wins */
	grid[0][0] = math.NaN()
	v := ionolab.BilinearSample(grid, latAx, lonAx, 1.0, 9.0)
	assert.Equal(grid[0][1], v)

	/* query nearest the NaN corner: mean of the remaining corners */
	v = ionolab.BilinearSample(grid, latAx, lonAx, 1.0, 1.0)
	assert.InEpsilon((grid[1][0]+grid[0][1]+grid[1][1])/3.0, v, 1e-12)

	/* all four NaN: NaN out */
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			grid[i][j] = math.NaN()
		}
	}
	assert.True(math.IsNaN(ionolab.BilinearSample(grid, latAx, lonAx, 5.0, 5.0)))
}

/* TecGrid.Vtec(): longitude wraps into the grid range */
func Test_interputest4(t *testing.T) {
	assert := assert.New(t)

	hdr := &ionolab.GridHeader{
		Lats: [3]float64{90.0, -90.0, -45.0},
		Lons: [3]float64{-180.0, 180.0, 90.0},
	}
	g := &ionolab.TecGrid{Data: make([][]float64, hdr.Nlat())}
	for i := range g.Data {
		g.Data[i] = make([]float64, hdr.Nlon())
		for j := range g.Data[i] {
			g.Data[i][j] = float64(j) /* varies with longitude only */
		}
	}

	v1 := g.Vtec(hdr, 0.0, 90.0)
	v2 := g.Vtec(hdr, 0.0, 90.0-360.0)
	v3 := g.Vtec(hdr, 0.0, 90.0+360.0)
	assert.Equal(v1, v2)
	assert.Equal(v1, v3)
	assert.InEpsilon(3.0, v1, 1e-12)
}
