/*------------------------------------------------------------------------------
* interp.go : bilinear sampling on regular lat/lon grids
*-----------------------------------------------------------------------------*/

package ionolab

import "math"

/* regular sampling axis -----------------------------------------------------*/
type GridAxis struct {
	Start float64
	Step  float64
	N     int
}

func axisOf(rng [3]float64) GridAxis {
	return GridAxis{Start: rng[0], Step: rng[2], N: nitem(rng)}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

/* fractional index on an axis; weight is 0 on a degenerate axis -------------*/
func fracIndex(ax GridAxis, v float64) (int, float64) {
	if ax.N <= 1 || ax.Step == 0.0 {
		return 0, 0.0
	}
	f := (v - ax.Start) / ax.Step
	i := int(math.Floor(f))
	return i, f - float64(i)
}

/* bilinear grid sampling ------------------------------------------------------
* sample a value from a regular lat/lon grid by bilinear interpolation
* args   : [][]float64 grid  I   values [lat index][lon index], NaN: no data
*          GridAxis latAxis  I   latitude axis
*          GridAxis lonAxis  I   longitude axis
*          double lat,lon    I   query point (axis units)
* return : interpolated value (NaN if all four neighbours are no-data)
* notes  : neighbour indices are clamped to the grid independently, so
*          out-of-range queries degrade to edge-value extrapolation; weights
*          come from the unclamped fractional index. no-data corners fall
*          back to the nearest corner, then to the mean of valid corners
*-----------------------------------------------------------------------------*/
func BilinearSample(grid [][]float64, latAxis, lonAxis GridAxis, lat, lon float64) float64 {
	i, a := fracIndex(latAxis, lat)
	j, b := fracIndex(lonAxis, lon)

	i0 := clampIndex(i, latAxis.N)
	i1 := clampIndex(i+1, latAxis.N)
	j0 := clampIndex(j, lonAxis.N)
	j1 := clampIndex(j+1, lonAxis.N)

	d := [4]float64{grid[i0][j0], grid[i1][j0], grid[i0][j1], grid[i1][j1]}

	if !math.IsNaN(d[0]) && !math.IsNaN(d[1]) && !math.IsNaN(d[2]) && !math.IsNaN(d[3]) {
		return (1.0-a)*(1.0-b)*d[0] + a*(1.0-b)*d[1] + (1.0-a)*b*d[2] + a*b*d[3]
	}

	/* nearest-corner fallback around no-data cells */
	switch {
	case a <= 0.5 && b <= 0.5 && !math.IsNaN(d[0]):
		return d[0]
	case a > 0.5 && b <= 0.5 && !math.IsNaN(d[1]):
		return d[1]
	case a <= 0.5 && b > 0.5 && !math.IsNaN(d[2]):
		return d[2]
	case a > 0.5 && b > 0.5 && !math.IsNaN(d[3]):
		return d[3]
	}
	sum, n := 0.0, 0
	for _, v := range d {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

/* vertical tec at a geographic point ------------------------------------------
* sample a tec map at (lat,lon) in degrees, wrapping longitude into the
* grid's declared range before interpolation
*-----------------------------------------------------------------------------*/
func (g *TecGrid) Vtec(hdr *GridHeader, lat, lon float64) float64 {
	dlon := lon - hdr.Lons[0]
	if hdr.Lons[2] > 0.0 {
		dlon -= math.Floor(dlon/360.0) * 360.0 /*  0<=dlon<360 */
	} else {
		dlon += math.Floor(-dlon/360.0) * 360.0 /* -360<dlon<=0 */
	}
	return BilinearSample(g.Data, axisOf(hdr.Lats), axisOf(hdr.Lons), lat, hdr.Lons[0]+dlon)
}
