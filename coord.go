/*------------------------------------------------------------------------------
* coord.go : coordinate transforms
*-----------------------------------------------------------------------------*/

package ionolab

import "math"

/* transform ecef to geodetic position -----------------------------------------
* convert an ecef position to geodetic latitude/longitude/height on the given
* reference ellipsoid by fixed-point iteration
* args   : double x,y,z     I   ecef position (same unit as a)
*          double a         I   ellipsoid semimajor axis
*          double f         I   ellipsoid flattening
* return : latitude (deg), longitude (deg, (-180,180]), ellipsoidal height
* notes  : iterates at most 10 times or until the latitude update falls below
*          1e-12 rad; the cap is part of the contract, not a convergence
*          guarantee. on the polar axis (x=y=0) returns zeros by convention,
*          so results exactly at the poles are not meaningful
*-----------------------------------------------------------------------------*/
func Ecef2Geodetic(x, y, z, a, f float64) (float64, float64, float64) {
	e2 := 2.0*f - f*f
	p := math.Sqrt(x*x + y*y)

	if p == 0.0 {
		return 0.0, 0.0, 0.0
	}

	lat := math.Atan2(z, p*(1.0-e2))
	n := a
	for i := 0; i < 10; i++ {
		sinp := math.Sin(lat)
		n = a / math.Sqrt(1.0-e2*sinp*sinp)
		next := math.Atan2(z+n*e2*sinp, p)
		if math.Abs(next-lat) < 1e-12 {
			lat = next
			break
		}
		lat = next
	}
	hgt := p/math.Cos(lat) - n

	lon := math.Atan2(y, x) * R2D
	if lon <= -180.0 {
		lon += 360.0
	}
	return lat * R2D, lon, hgt
}
