/*------------------------------------------------------------------------------
* iono.go : single-layer ionospheric delay model
*
* references:
*     [2] RTCA/DO-229C A.4.4.10 (single layer pierce point geometry)
*
* notes  : the mapping function uses the one consistent derivation
*          sin(E') = R/(R+h)*cos(E) with E the elevation above horizon;
*          non-physical inputs are rejected, never clamped
*-----------------------------------------------------------------------------*/

package ionolab

import "math"

/* single-layer model parameters ---------------------------------------------*/
type IonoModel struct {
	ShellHeight float64 /* ionosphere shell height (m) */
	Radius      float64 /* earth radius (m) */
}

/* model with the default 450 km shell over a 6371 km sphere */
func NewIonoModel() IonoModel {
	return IonoModel{ShellHeight: HION, Radius: RE_MEAN}
}

func (m IonoModel) checkElev(elevDeg float64) error {
	if math.IsNaN(elevDeg) || elevDeg <= 0.0 || elevDeg > 90.0 {
		return &InvalidGeometryError{What: "elevation (deg)", Val: elevDeg}
	}
	return nil
}

/* ionosphere mapping function -------------------------------------------------
* compute the vertical-to-slant factor of the single layer model
* args   : double elevDeg   I   elevation above horizon (deg), 0<elev<=90
* return : mapping factor m>=1 (exactly 1 at zenith), error on invalid input
*-----------------------------------------------------------------------------*/
func (m IonoModel) MappingFunction(elevDeg float64) (float64, error) {
	if err := m.checkElev(elevDeg); err != nil {
		return 0, err
	}
	rp := m.Radius / (m.Radius + m.ShellHeight) * math.Cos(elevDeg*D2R)
	return 1.0 / math.Cos(math.Asin(rp)), nil
}

/* ionospheric pierce point ----------------------------------------------------
* project the receiver position along the line of sight onto the shell
* args   : double lat,lon   I   receiver position (deg)
*          double elevDeg   I   elevation angle (deg)
*          double azDeg     I   azimuth angle, clockwise from north (deg)
* return : pierce point latitude, longitude (deg), error
* notes  : see ref [2]; the longitude update switches branch near the poles
*-----------------------------------------------------------------------------*/
func (m IonoModel) PiercePoint(lat, lon, elevDeg, azDeg float64) (float64, float64, error) {
	if err := m.checkElev(elevDeg); err != nil {
		return 0, 0, err
	}
	var (
		el  = elevDeg * D2R
		az  = azDeg * D2R
		phi = lat * D2R
		rp  = m.Radius / (m.Radius + m.ShellHeight) * math.Cos(el)
		psi = PI/2.0 - el - math.Asin(rp)
	)
	sinpsi, cospsi := math.Sin(psi), math.Cos(psi)
	cosaz := math.Cos(az)

	latp := math.Asin(math.Sin(phi)*cospsi + math.Cos(phi)*sinpsi*cosaz)

	var lonp float64
	tanpsi := math.Tan(psi)
	if (phi > 70.0*D2R && tanpsi*cosaz > math.Tan(PI/2.0-phi)) ||
		(phi < -70.0*D2R && -tanpsi*cosaz > math.Tan(PI/2.0+phi)) {
		lonp = lon*D2R + PI - math.Asin(sinpsi*math.Sin(az)/math.Cos(latp))
	} else {
		lonp = lon*D2R + math.Asin(sinpsi*math.Sin(az)/math.Cos(latp))
	}

	lonDeg := lonp * R2D
	for lonDeg > 180.0 {
		lonDeg -= 360.0
	}
	for lonDeg <= -180.0 {
		lonDeg += 360.0
	}
	return latp * R2D, lonDeg, nil
}

/* slant ionospheric delay -----------------------------------------------------
* convert vertical tec at the pierce point to group delay on a carrier
* args   : double vtec      I   vertical tec (TECU)
*          double elevDeg   I   elevation angle (deg)
*          double freqHz    I   carrier frequency (Hz)
* return : delay (m), error on invalid elevation or frequency
*-----------------------------------------------------------------------------*/
func (m IonoModel) Delay(vtec, elevDeg, freqHz float64) (float64, error) {
	if freqHz <= 0.0 || math.IsNaN(freqHz) {
		return 0, &InvalidGeometryError{What: "frequency (Hz)", Val: freqHz}
	}
	mf, err := m.MappingFunction(elevDeg)
	if err != nil {
		return 0, err
	}
	stec := vtec * mf
	return K_IONO / (freqHz * freqHz) * stec * TECU, nil
}

/* slant ionospheric delay in time units (s) ---------------------------------*/
func (m IonoModel) DelaySeconds(vtec, elevDeg, freqHz float64) (float64, error) {
	d, err := m.Delay(vtec, elevDeg, freqHz)
	if err != nil {
		return 0, err
	}
	return d / CLIGHT, nil
}
