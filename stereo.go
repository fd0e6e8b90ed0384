/*------------------------------------------------------------------------------
* stereo.go : polar stereographic dem coordinate transform
*
* notes  : spherical polar stereographic projection as used by the lola polar
*          gdr products. the hemisphere is taken from the projection
*          parameters, not assumed
*-----------------------------------------------------------------------------*/

package ionolab

import "math"

/* polar stereographic transform parameters ----------------------------------*/
type PolarStereo struct {
	Radius    float64 /* sphere radius (m) */
	MapScale  float64 /* meters per pixel */
	CenterX   float64 /* projection center sample offset (pixel) */
	CenterY   float64 /* projection center line offset (pixel) */
	CenterLon float64 /* center longitude (deg) */
	MinLat    float64 /* declared coverage (deg) */
	MaxLat    float64
	South     bool    /* south polar aspect */
}

/* transform built from a dem label; hemisphere from the center latitude sign */
func NewPolarStereo(p *DemRasterParams) PolarStereo {
	return PolarStereo{
		Radius:    p.AAxisRadius * 1000.0,
		MapScale:  p.MapScale,
		CenterX:   p.SampleProjectionOffset,
		CenterY:   p.LineProjectionOffset,
		CenterLon: p.CenterLongitude,
		MinLat:    p.MinimumLatitude,
		MaxLat:    p.MaximumLatitude,
		South:     p.CenterLatitude < 0.0,
	}
}

/* colatitude from the projection pole ---------------------------------------*/
func (t *PolarStereo) chi(lat float64) float64 {
	if t.South {
		return (90.0 + lat) * D2R
	}
	return (90.0 - lat) * D2R
}

/* geographic to pixel ---------------------------------------------------------
* project (lat,lon) in degrees onto raster pixel coordinates
* args   : double lat,lon   I   geographic position (deg)
* return : sample (px), line (py), error (OutOfCoverage outside the declared
*          latitude band)
*-----------------------------------------------------------------------------*/
func (t *PolarStereo) GeographicToPixel(lat, lon float64) (float64, float64, error) {
	if lat < t.MinLat || lat > t.MaxLat {
		return 0, 0, &OutOfCoverageError{What: "latitude", Val: lat, Min: t.MinLat, Max: t.MaxLat}
	}
	chi := t.chi(lat)
	r := 2.0 * t.Radius * math.Tan(chi/2.0)
	theta := (lon - t.CenterLon) * D2R

	x := r * math.Cos(theta)
	y := r * math.Sin(theta)

	px := x/t.MapScale + t.CenterX
	py := y/t.MapScale + t.CenterY
	return px, py, nil
}

/* pixel to geographic ---------------------------------------------------------
* invert the projection: raster pixel coordinates to (lat,lon) in degrees
* return : latitude (deg), longitude (deg, [0,360))
*-----------------------------------------------------------------------------*/
func (t *PolarStereo) PixelToGeographic(px, py float64) (float64, float64) {
	x := (px - t.CenterX) * t.MapScale
	y := (py - t.CenterY) * t.MapScale

	r := math.Hypot(x, y)
	theta := math.Atan2(y, x)
	chi := 2.0 * math.Atan(r/(2.0*t.Radius))

	lat := 90.0 - chi*R2D
	if t.South {
		lat = -lat
	}
	lon := theta*R2D + t.CenterLon
	lon = math.Mod(lon, 360.0)
	if lon < 0.0 {
		lon += 360.0
	}
	return lat, lon
}

/* raster height lookup by nearest pixel ---------------------------------------
* args   : double lat,lon   I   geographic position (deg)
* return : elevation (m), error (OutOfCoverage outside the latitude band or
*          the raster extent)
*-----------------------------------------------------------------------------*/
func (r *DemRaster) HeightAt(lat, lon float64) (float64, error) {
	t := NewPolarStereo(&r.Params)
	px, py, err := t.GeographicToPixel(lat, lon)
	if err != nil {
		return 0, err
	}
	if px < 0 || px >= float64(r.Params.LineSamples) || py < 0 || py >= float64(r.Params.Lines) {
		return 0, &OutOfCoverageError{What: "pixel", Val: px, Min: 0, Max: float64(r.Params.LineSamples - 1)}
	}
	line := clampIndex(int(math.Round(py)), r.Params.Lines)
	sample := clampIndex(int(math.Round(px)), r.Params.LineSamples)
	return r.At(line, sample), nil
}

/* raster height lookup with bilinear interpolation --------------------------*/
func (r *DemRaster) HeightAtInterpolated(lat, lon float64) (float64, error) {
	t := NewPolarStereo(&r.Params)
	px, py, err := t.GeographicToPixel(lat, lon)
	if err != nil {
		return 0, err
	}
	if px < 0 || px >= float64(r.Params.LineSamples) || py < 0 || py >= float64(r.Params.Lines) {
		return 0, &OutOfCoverageError{What: "pixel", Val: px, Min: 0, Max: float64(r.Params.LineSamples - 1)}
	}

	x1 := clampIndex(int(math.Floor(px)), r.Params.LineSamples)
	x2 := clampIndex(int(math.Ceil(px)), r.Params.LineSamples)
	y1 := clampIndex(int(math.Floor(py)), r.Params.Lines)
	y2 := clampIndex(int(math.Ceil(py)), r.Params.Lines)

	wx := px - math.Floor(px)
	wy := py - math.Floor(py)

	v11 := r.At(y1, x1)
	v12 := r.At(y1, x2)
	v21 := r.At(y2, x1)
	v22 := r.At(y2, x2)

	return (1.0-wx)*(1.0-wy)*v11 + wx*(1.0-wy)*v12 +
		(1.0-wx)*wy*v21 + wx*wy*v22, nil
}
