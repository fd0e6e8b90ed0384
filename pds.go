/*------------------------------------------------------------------------------
* pds.go : pds dem label parser and raster reader
*
* notes  : the byte order comes unconditionally from the declared SAMPLE_TYPE;
*          a label without it fails with HeaderIncomplete instead of guessing.
*          implausible decoded elevations are reported through RasterStats,
*          never auto-corrected
*-----------------------------------------------------------------------------*/

package ionolab

import (
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reInt = map[string]*regexp.Regexp{
		"lines":        regexp.MustCompile(`(?i)LINES\s*=\s*(\d+)`),
		"line_samples": regexp.MustCompile(`(?i)LINE_SAMPLES\s*=\s*(\d+)`),
		"sample_bits":  regexp.MustCompile(`(?i)SAMPLE_BITS\s*=\s*(\d+)`),
		"file_records": regexp.MustCompile(`(?i)FILE_RECORDS\s*=\s*(\d+)`),
		"record_bytes": regexp.MustCompile(`(?i)RECORD_BYTES\s*=\s*(\d+)`),
	}
	reFloat = map[string]*regexp.Regexp{
		"scaling_factor":           regexp.MustCompile(`(?i)SCALING_FACTOR\s*=\s*([\d\.\-]+)`),
		"offset":                   regexp.MustCompile(`(?i)\bOFFSET\s*=\s*([\d\.\-]+)`),
		"map_scale":                regexp.MustCompile(`(?i)MAP_SCALE\s*=\s*([\d\.]+)`),
		"center_latitude":          regexp.MustCompile(`(?i)CENTER_LATITUDE\s*=\s*([\d\.\-]+)\s*<deg>`),
		"center_longitude":         regexp.MustCompile(`(?i)CENTER_LONGITUDE\s*=\s*([\d\.\-]+)\s*<deg>`),
		"minimum_latitude":         regexp.MustCompile(`(?i)MINIMUM_LATITUDE\s*=\s*([\d\.\-]+)\s*<deg>`),
		"maximum_latitude":         regexp.MustCompile(`(?i)MAXIMUM_LATITUDE\s*=\s*([\d\.\-]+)\s*<deg>`),
		"sample_projection_offset": regexp.MustCompile(`(?i)SAMPLE_PROJECTION_OFFSET\s*=\s*([\d\.\-]+)\s*<pix>`),
		"line_projection_offset":   regexp.MustCompile(`(?i)LINE_PROJECTION_OFFSET\s*=\s*([\d\.\-]+)\s*<pix>`),
		"a_axis_radius":            regexp.MustCompile(`(?i)A_AXIS_RADIUS\s*=\s*([\d\.]+)\s*<km>`),
		"b_axis_radius":            regexp.MustCompile(`(?i)B_AXIS_RADIUS\s*=\s*([\d\.]+)\s*<km>`),
		"c_axis_radius":            regexp.MustCompile(`(?i)C_AXIS_RADIUS\s*=\s*([\d\.]+)\s*<km>`),
		"derived_minimum":          regexp.MustCompile(`(?i)DERIVED_MINIMUM\s*=\s*([\d\.\-]+)`),
		"derived_maximum":          regexp.MustCompile(`(?i)DERIVED_MAXIMUM\s*=\s*([\d\.\-]+)`),
	}
	reStr = map[string]*regexp.Regexp{
		"map_projection_type": regexp.MustCompile(`(?i)MAP_PROJECTION_TYPE\s*=\s*"([^"]+)"`),
		"sample_type":         regexp.MustCompile(`(?i)SAMPLE_TYPE\s*=\s*"?([A-Z_]+)"?`),
		"file_name":           regexp.MustCompile(`(?i)FILE_NAME\s*=\s*"([^"]+)"`),
		"product_id":          regexp.MustCompile(`(?i)PRODUCT_ID\s*=\s*"([^"]+)"`),
	}
)

func labelInt(content, key string) (int, bool) {
	if m := reInt[key].FindStringSubmatch(content); m != nil {
		v, err := strconv.Atoi(m[1])
		if err == nil {
			return v, true
		}
	}
	return 0, false
}

func labelFloat(content, key string) (float64, bool) {
	if m := reFloat[key].FindStringSubmatch(content); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return v, true
		}
	}
	return 0, false
}

func labelStr(content, key string) (string, bool) {
	if m := reStr[key].FindStringSubmatch(content); m != nil {
		return m[1], true
	}
	return "", false
}

/* parse pds dem label ---------------------------------------------------------
* extract raster and projection parameters from a pds .lbl text
* args   : string content   I   whole label content
* return : params, error (HeaderIncomplete when a required field is missing)
* notes  : required: LINES, LINE_SAMPLES, SAMPLE_BITS, SAMPLE_TYPE,
*          SCALING_FACTOR, OFFSET. projection fields default to the lunar
*          100m polar product conventions when absent
*-----------------------------------------------------------------------------*/
func ParsePdsLabel(content string) (*DemRasterParams, error) {
	var (
		p  DemRasterParams
		ok bool
	)
	Trace(4, "ParsePdsLabel: len=%d\n", len(content))

	if p.Lines, ok = labelInt(content, "lines"); !ok {
		return nil, &HeaderIncompleteError{Field: "LINES"}
	}
	if p.LineSamples, ok = labelInt(content, "line_samples"); !ok {
		return nil, &HeaderIncompleteError{Field: "LINE_SAMPLES"}
	}
	if p.SampleBits, ok = labelInt(content, "sample_bits"); !ok {
		return nil, &HeaderIncompleteError{Field: "SAMPLE_BITS"}
	}
	if p.SampleType, ok = labelStr(content, "sample_type"); !ok {
		return nil, &HeaderIncompleteError{Field: "SAMPLE_TYPE"}
	}
	if p.ScalingFactor, ok = labelFloat(content, "scaling_factor"); !ok {
		return nil, &HeaderIncompleteError{Field: "SCALING_FACTOR"}
	}
	if p.Offset, ok = labelFloat(content, "offset"); !ok {
		return nil, &HeaderIncompleteError{Field: "OFFSET"}
	}

	p.FileRecords, _ = labelInt(content, "file_records")
	p.RecordBytes, _ = labelInt(content, "record_bytes")
	p.MapProjectionType, _ = labelStr(content, "map_projection_type")
	p.FileName, _ = labelStr(content, "file_name")
	p.ProductID, _ = labelStr(content, "product_id")

	p.MapScale, _ = labelFloat(content, "map_scale")
	p.CenterLatitude, _ = labelFloat(content, "center_latitude")
	p.CenterLongitude, _ = labelFloat(content, "center_longitude")
	p.MinimumLatitude, _ = labelFloat(content, "minimum_latitude")
	p.MaximumLatitude, _ = labelFloat(content, "maximum_latitude")
	p.SampleProjectionOffset, _ = labelFloat(content, "sample_projection_offset")
	p.LineProjectionOffset, _ = labelFloat(content, "line_projection_offset")
	p.DerivedMinimum, _ = labelFloat(content, "derived_minimum")
	p.DerivedMaximum, _ = labelFloat(content, "derived_maximum")

	if p.AAxisRadius, ok = labelFloat(content, "a_axis_radius"); !ok {
		p.AAxisRadius = RM_MOON / 1000.0
	}
	if p.BAxisRadius, ok = labelFloat(content, "b_axis_radius"); !ok {
		p.BAxisRadius = RM_MOON / 1000.0
	}
	if p.CAxisRadius, ok = labelFloat(content, "c_axis_radius"); !ok {
		p.CAxisRadius = RM_MOON / 1000.0
	}
	return &p, nil
}

/* byte order declared by the label; never guessed ---------------------------*/
func (p *DemRasterParams) ByteOrder() (binary.ByteOrder, error) {
	t := strings.ToUpper(p.SampleType)
	switch {
	case strings.Contains(t, "LSB"):
		return binary.LittleEndian, nil
	case strings.Contains(t, "MSB"):
		return binary.BigEndian, nil
	}
	return nil, &HeaderIncompleteError{Field: "SAMPLE_TYPE byte order"}
}

/* read dem raster -------------------------------------------------------------
* decode a pds .img sample buffer into elevations in meters
* args   : []byte img       I   raw image content
*          DemRasterParams *p I  parameters from the companion label
* return : raster, error
* notes  : elevation = sample * ScalingFactor. a buffer longer than the
*          declared raster is truncated; a shorter one is a MalformedRecord
*          failure. sample widths other than 16/32 bit are rejected
*-----------------------------------------------------------------------------*/
func ReadDemRaster(img []byte, p *DemRasterParams) (*DemRaster, error) {
	order, err := p.ByteOrder()
	if err != nil {
		return nil, err
	}
	if p.SampleBits != 16 && p.SampleBits != 32 {
		return nil, &HeaderIncompleteError{Field: fmt.Sprintf("SAMPLE_BITS=%d", p.SampleBits)}
	}
	width := p.SampleBits / 8
	n := p.Lines * p.LineSamples
	if len(img) < n*width {
		return nil, fmt.Errorf("%w: raster truncated: have %d bytes, want %d",
			ErrMalformedRecord, len(img), n*width)
	}
	if len(img) > n*width {
		Trace(2, "dem raster oversized: have %d bytes, want %d\n", len(img), n*width)
		img = img[:n*width]
	}

	elev := make([]float32, n)
	scale := float32(p.ScalingFactor)
	if p.SampleBits == 16 {
		for i := 0; i < n; i++ {
			elev[i] = float32(int16(order.Uint16(img[2*i:]))) * scale
		}
	} else {
		for i := 0; i < n; i++ {
			elev[i] = float32(int32(order.Uint32(img[4*i:]))) * scale
		}
	}
	return &DemRaster{Params: *p, Elevation: elev}, nil
}

/* raster statistics and plausibility check ------------------------------------
* min/max/mean over the elevation array; Suspect is set when values fall
* outside the plausible lunar range, which usually means the declared byte
* order or scaling factor does not match the data
*-----------------------------------------------------------------------------*/
func (r *DemRaster) Stats() RasterStats {
	var s RasterStats
	if len(r.Elevation) == 0 {
		return s
	}
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	sum := 0.0
	for _, v := range r.Elevation {
		f := float64(v)
		if f < s.Min {
			s.Min = f
		}
		if f > s.Max {
			s.Max = f
		}
		sum += f
	}
	s.Mean = sum / float64(len(r.Elevation))
	if s.Min < MIN_ELEV_MOON || s.Max > MAX_ELEV_MOON {
		s.Suspect = true
		Trace(2, "dem raster implausible: min=%.1f max=%.1f mean=%.1f (check SAMPLE_TYPE/SCALING_FACTOR)\n",
			s.Min, s.Max, s.Mean)
	}
	return s
}
