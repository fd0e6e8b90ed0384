/*------------------------------------------------------------------------------
* types.go : constants and value types for ionospheric/planetary geodesy
*
* notes  : all parsed structures (grids, ephemeris tables, rasters) are value
*          objects; a parse call returns a fresh owned structure with no
*          back-references, so they are safe to share across goroutines
*-----------------------------------------------------------------------------*/

package ionolab

import (
	"math"
	"time"
)

const (
	PI  float64 = 3.1415926535897932 /* pi */
	D2R         = (PI / 180.0)       /* deg to rad */
	R2D         = (180.0 / PI)       /* rad to deg */

	CLIGHT float64 = 299792458.0 /* speed of light (m/s) */

	FREQ1_GLO float64 = 1.60200e9 /* GLONASS G1 base frequency (Hz) */
	DFRQ1_GLO float64 = 0.56250e6 /* GLONASS G1 bias frequency (Hz/n) */

	MINFREQ_GLO = -7 /* min frequency channel GLONASS */
	MAXFREQ_GLO = 13 /* max frequency channel GLONASS */

	K_IONO float64 = 40.31 /* ionosphere group delay constant (m^3/s^2) */
	TECU   float64 = 1e16  /* 1 TECU (electrons/m^2) */

	RE_MEAN float64 = 6371000.0 /* mean earth radius (m) */
	HION    float64 = 450000.0  /* default ionosphere shell height (m) */

	RE_PZ90  float64 = 6378136.0             /* earth semimajor axis (PZ-90) (m) */
	FE_PZ90  float64 = (1.0 / 298.257839303) /* earth flattening (PZ-90) */
	RE_WGS84 float64 = 6378137.0             /* earth semimajor axis (WGS84) (m) */
	FE_WGS84 float64 = (1.0 / 298.257223563) /* earth flattening (WGS84) */

	RM_MOON float64 = 1737400.0 /* lunar reference sphere radius (m) */
)

const (
	IONEX_NODATA = 9999.0 /* ionex no-data sentinel (map units) */
	IONEX_DEXP   = -1.0   /* ionex default value exponent */
)

/* plausible lunar elevation range used by the raster byte order check (m) */
const (
	MIN_ELEV_MOON = -10000.0
	MAX_ELEV_MOON = 10000.0
)

/* grid header: axis triplets are {first,last,step} as in ionex ---------------*/
type GridHeader struct {
	Lats     [3]float64 /* latitude  {first,last,step} (deg) */
	Lons     [3]float64 /* longitude {first,last,step} (deg) */
	Hgts     [3]float64 /* height    {first,last,step} (km) */
	Radius   float64    /* base radius (km) */
	Exponent float64    /* value scale exponent (10^n) */
	NMaps    int        /* # of maps in file */
	Interval float64    /* map interval (s) */
	Epoch    time.Time  /* epoch of first map */
}

/* number of latitude rows derived from the header range/step */
func (h *GridHeader) Nlat() int { return nitem(h.Lats) }

/* number of longitude columns derived from the header range/step */
func (h *GridHeader) Nlon() int { return nitem(h.Lons) }

/* tec map: Data[i][j] is TECU at latitude index i, longitude index j.
 * NaN marks a cell with no measurement (unfilled row or 9999 sentinel) */
type TecGrid struct {
	Time time.Time
	Data [][]float64
}

/* glonass broadcast ephemeris point (one 4-line navigation record) ----------*/
type GloEph struct {
	Prn  int       /* slot number */
	Time time.Time /* epoch of ephemeris (utc) */

	TauN float64 /* sv clock bias (s) */
	GamN float64 /* relative frequency bias */
	Tk   float64 /* message frame time (s) */

	Pos [3]float64 /* ecef position (km) */
	Vel [3]float64 /* ecef velocity (km/s) */
	Acc [3]float64 /* ecef acceleration (km/s^2) */

	Svh int /* health flag (0:ok) */
	Frq int /* frequency channel (-7..13) */
	Age int /* age of operation (days) */

	Lat float64 /* derived geodetic latitude (deg) */
	Lon float64 /* derived geodetic longitude (deg) */
	Hgt float64 /* derived geodetic height (km) */
}

/* carrier frequency of the G1 channel for this ephemeris (Hz) */
func (g *GloEph) Freq1() float64 {
	return FREQ1_GLO + DFRQ1_GLO*float64(g.Frq)
}

/* pds dem raster parameters from the .lbl label --------------------------- */
type DemRasterParams struct {
	Lines       int /* raster rows */
	LineSamples int /* raster columns */

	ScalingFactor float64 /* sample -> meters */
	Offset        float64 /* reference sphere radius (m) */
	SampleBits    int     /* 16 or 32 */
	SampleType    string  /* LSB_INTEGER / MSB_INTEGER */

	FileRecords int
	RecordBytes int

	MapProjectionType string
	MapScale          float64 /* m/pixel */
	CenterLatitude    float64 /* deg */
	CenterLongitude   float64 /* deg */
	MinimumLatitude   float64 /* deg */
	MaximumLatitude   float64 /* deg */

	SampleProjectionOffset float64 /* projection center x (pixel) */
	LineProjectionOffset   float64 /* projection center y (pixel) */

	AAxisRadius float64 /* km */
	BAxisRadius float64 /* km */
	CAxisRadius float64 /* km */

	DerivedMinimum float64
	DerivedMaximum float64

	FileName  string
	ProductID string
}

/* dem raster: elevations in meters relative to the Offset sphere ------------*/
type DemRaster struct {
	Params    DemRasterParams
	Elevation []float32 /* row-major, Lines x LineSamples */
}

/* elevation at pixel (line,sample); NaN if out of the raster */
func (r *DemRaster) At(line, sample int) float64 {
	if line < 0 || line >= r.Params.Lines || sample < 0 || sample >= r.Params.LineSamples {
		return math.NaN()
	}
	return float64(r.Elevation[line*r.Params.LineSamples+sample])
}

/* absolute radius from the body center at pixel (line,sample) (m) */
func (r *DemRaster) RadiusAt(line, sample int) float64 {
	return r.At(line, sample) + r.Params.Offset
}

/* raster statistics for the plausibility / byte order check -----------------*/
type RasterStats struct {
	Min, Max, Mean float64
	Suspect        bool /* values outside the plausible body range */
}

/* parse diagnostics returned alongside parse results ------------------------*/
type ParseSummary struct {
	Maps           int /* tec maps read */
	Records        int /* navigation records read */
	SkippedRows    int /* tec latitude rows left unfilled */
	SkippedRecords int /* malformed navigation records */
	TokenWarnings  int /* malformed numeric tokens skipped */
}
