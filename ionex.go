/*------------------------------------------------------------------------------
* ionex.go : ionex tec grid parser
*
* references:
*     [1] S.Schear, W.Gurtner and J.Feltens, IONEX: The IONosphere Map EXchange
*         Format Version 1, February 25, 1998
*
* notes  : accepts both standard ionex maps (LAT/LON1/LON2/DLON/H row labels)
*          and the glonass-iac lab dialect where the row header is a bare
*          glued "lat lon1 lon2 dlon h" line. cells with the 9999 sentinel or
*          belonging to rows that could not be completed are NaN
*-----------------------------------------------------------------------------*/

package ionolab

import (
	"math"
	"sort"
	"strings"
	"time"
)

/* axis index of value on a {first,last,step} range; -1 if outside -----------*/
func getindex(value float64, rng [3]float64) int {
	if rng[2] == 0.0 {
		return 0
	}
	if rng[2] > 0.0 && (value < rng[0] || rng[1] < value) {
		return -1
	}
	if rng[2] < 0.0 && (value < rng[1] || rng[0] < value) {
		return -1
	}
	return int(math.Floor((value-rng[0])/rng[2] + 0.5))
}

/* number of items on a {first,last,step} range ------------------------------*/
func nitem(rng [3]float64) int {
	return getindex(rng[1], rng) + 1
}

func epochTime(tok []float64) time.Time {
	sec := int(tok[5])
	nsec := int((tok[5] - float64(sec)) * 1e9)
	return time.Date(int(tok[0]), time.Month(int(tok[1])), int(tok[2]),
		int(tok[3]), int(tok[4]), sec, nsec, time.UTC)
}

/* structural markers that terminate a latitude row --------------------------*/
func structuralMarker(line string) bool {
	return strings.Contains(line, "LAT/LON1/LON2/DLON/H") ||
		strings.Contains(line, "END OF") ||
		strings.Contains(line, "START OF")
}

/* read ionex header ---------------------------------------------------------*/
func readIonexHeader(lines []string, hdr *GridHeader, sum *ParseSummary) (int, error) {
	var haveLat, haveLon bool

	hdr.Exponent = IONEX_DEXP

	take3 := func(line string, dst *[3]float64) bool {
		tok, nw := ExtractNumbers(line)
		sum.TokenWarnings += nw
		if len(tok) < 3 {
			return false
		}
		dst[0], dst[1], dst[2] = tok[0], tok[1], tok[2]
		return true
	}

	for i, line := range lines {
		switch {
		case strings.Contains(line, "END OF HEADER"):
			if !haveLat {
				return 0, &HeaderIncompleteError{Field: "LAT1 / LAT2 / DLAT"}
			}
			if !haveLon {
				return 0, &HeaderIncompleteError{Field: "LON1 / LON2 / DLON"}
			}
			if hdr.Nlat() <= 0 || hdr.Nlon() <= 0 {
				return 0, &HeaderIncompleteError{Field: "grid range/step"}
			}
			return i + 1, nil
		case strings.Contains(line, "LAT1 / LAT2 / DLAT"):
			haveLat = take3(line, &hdr.Lats)
		case strings.Contains(line, "LON1 / LON2 / DLON"):
			haveLon = take3(line, &hdr.Lons)
		case strings.Contains(line, "HGT1 / HGT2 / DHGT"):
			take3(line, &hdr.Hgts)
		case strings.Contains(line, "# OF MAPS IN FILE"):
			if tok, nw := ExtractNumbers(line); len(tok) > 0 {
				hdr.NMaps = int(tok[0])
				sum.TokenWarnings += nw
			}
		case strings.Contains(line, "EPOCH OF FIRST MAP"):
			if tok, nw := ExtractNumbers(line); len(tok) >= 6 {
				hdr.Epoch = epochTime(tok)
				sum.TokenWarnings += nw
			}
		case strings.Contains(line, "INTERVAL"):
			if tok, nw := ExtractNumbers(line); len(tok) > 0 {
				hdr.Interval = tok[0]
				sum.TokenWarnings += nw
			}
		case strings.Contains(line, "BASE RADIUS"):
			if tok, nw := ExtractNumbers(line); len(tok) > 0 {
				hdr.Radius = tok[0]
				sum.TokenWarnings += nw
			}
		case strings.Contains(line, "EXPONENT"):
			if tok, nw := ExtractNumbers(line); len(tok) > 0 {
				hdr.Exponent = tok[0]
				sum.TokenWarnings += nw
			}
		}
	}
	return 0, &HeaderIncompleteError{Field: "END OF HEADER"}
}

func newGridData(nlat, nlon int) [][]float64 {
	data := make([][]float64, nlat)
	for i := range data {
		data[i] = make([]float64, nlon)
		for j := range data[i] {
			data[i][j] = math.NaN()
		}
	}
	return data
}

/* a bare lab-dialect row header: "lat lon1 lon2 dlon h" matching the grid ---*/
func labRowHeader(tok []float64, hdr *GridHeader) bool {
	return len(tok) == 5 && getindex(tok[0], hdr.Lats) >= 0 &&
		tok[1] == hdr.Lons[0] && tok[2] == hdr.Lons[1]
}

/* collect tec values for one latitude row from the lines following i --------*/
func collectRow(lines []string, i, nlon int, hdr *GridHeader, sum *ParseSummary) ([]float64, int) {
	var vals []float64
	for i < len(lines) && len(vals) < nlon {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		if structuralMarker(line) {
			break
		}
		tok, nw := ExtractNumbers(line)
		sum.TokenWarnings += nw
		if len(tok) == 0 {
			break
		}
		if labRowHeader(tok, hdr) {
			/* next row starts here; the current one was cut short */
			break
		}
		vals = append(vals, tok...)
		i++
	}
	return vals, i
}

/* store a completed row, mapping the sentinel to NaN ------------------------*/
func storeRow(data [][]float64, idx int, vals []float64, scale float64) {
	for j := 0; j < len(data[idx]) && j < len(vals); j++ {
		if vals[j] == IONEX_NODATA {
			data[idx][j] = math.NaN()
			continue
		}
		data[idx][j] = vals[j] * scale
	}
}

/* read one tec map body starting after its START OF TEC MAP line ------------*/
func readTecMap(lines []string, i int, hdr *GridHeader, sum *ParseSummary) (TecGrid, int) {
	var (
		grid TecGrid
		nlat = hdr.Nlat()
		nlon = hdr.Nlon()
	)
	scale := math.Pow(10.0, hdr.Exponent)
	grid.Data = newGridData(nlat, nlon)

	/* map epoch: first non-blank line holds six integer tokens */
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i < len(lines) {
		if tok, nw := ExtractNumbers(lines[i]); len(tok) >= 6 {
			grid.Time = epochTime(tok)
			sum.TokenWarnings += nw
			i++
		}
	}

	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		if strings.Contains(line, "END OF TEC MAP") {
			i++
			break
		}
		if strings.Contains(line, "START OF") {
			/* unterminated map; leave the marker for the outer loop */
			break
		}

		var rowIdx = -1
		if strings.Contains(line, "LAT/LON1/LON2/DLON/H") {
			/* standard ionex row label */
			tok, nw := ExtractNumbers(line)
			sum.TokenWarnings += nw
			if len(tok) > 0 {
				rowIdx = getindex(tok[0], hdr.Lats)
			}
		} else {
			/* lab dialect: bare "lat lon1 lon2 dlon h" header line */
			tok, nw := ExtractNumbers(line)
			sum.TokenWarnings += nw
			if len(tok) == 0 || getindex(tok[0], hdr.Lats) < 0 {
				i++
				continue
			}
			rowIdx = getindex(tok[0], hdr.Lats)
		}
		i++

		vals, next := collectRow(lines, i, nlon, hdr, sum)
		i = next
		if rowIdx < 0 || len(vals) < nlon {
			/* row cannot be placed or was cut short: leave it unfilled */
			Trace(2, "ionex tec row skipped: idx=%d got=%d want=%d\n", rowIdx, len(vals), nlon)
			sum.SkippedRows++
			continue
		}
		storeRow(grid.Data, rowIdx, vals, scale)
	}
	return grid, i
}

/* parse ionex tec grid text ---------------------------------------------------
* parse an ionex file into its header and time-ordered tec maps
* args   : string text      I   whole-file content
* return : header, maps, parse summary, error
* notes  : a missing lat/lon range is a hard HeaderIncomplete failure; rows
*          that fail to parse are counted in the summary and the map is kept.
*          maps come back sorted by epoch with duplicate epochs collapsed
*          (last wins), see ref [1]
*-----------------------------------------------------------------------------*/
func ParseIonex(text string) (*GridHeader, []TecGrid, *ParseSummary, error) {
	var (
		hdr   GridHeader
		grids []TecGrid
		sum   ParseSummary
	)
	Trace(4, "ParseIonex: len=%d\n", len(text))

	lines := strings.Split(text, "\n")
	i, err := readIonexHeader(lines, &hdr, &sum)
	if err != nil {
		return nil, nil, nil, err
	}

	for i < len(lines) {
		line := lines[i]
		switch {
		case strings.Contains(line, "START OF TEC MAP"):
			var g TecGrid
			g, i = readTecMap(lines, i+1, &hdr, &sum)
			grids = append(grids, g)
			sum.Maps++
		case strings.Contains(line, "START OF RMS MAP"):
			for i < len(lines) && !strings.Contains(lines[i], "END OF RMS MAP") {
				i++
			}
		default:
			i++
		}
	}

	/* time-order the maps and drop duplicate epochs (last wins) */
	sort.SliceStable(grids, func(a, b int) bool { return grids[a].Time.Before(grids[b].Time) })
	n := 0
	for j := range grids {
		if j > 0 && grids[j].Time.Equal(grids[n-1].Time) {
			grids[n-1] = grids[j]
			continue
		}
		grids[n] = grids[j]
		n++
	}
	grids = grids[:n]
	sum.Maps = n

	Trace(5, "ParseIonex: maps=%d skipped=%d\n", sum.Maps, sum.SkippedRows)
	return &hdr, grids, &sum, nil
}

/* vertical tec at an epoch ----------------------------------------------------
* interpolate vtec between the two maps bracketing t, sampling each map at
* (lat,lon) by bilinear interpolation
* args   : GridHeader *hdr  I   grid header
*          []TecGrid grids  I   time-ordered tec maps
*          time.Time t      I   query epoch (utc)
*          double lat,lon   I   query point (deg)
* return : vtec (TECU), error (OutOfCoverage if t outside the map period or
*          no usable data at the point)
*-----------------------------------------------------------------------------*/
func VtecAt(hdr *GridHeader, grids []TecGrid, t time.Time, lat, lon float64) (float64, error) {
	var i int
	for i = 0; i < len(grids); i++ {
		if grids[i].Time.After(t) {
			break
		}
	}
	if n := len(grids); i >= n && n > 0 && t.Equal(grids[n-1].Time) {
		i = n - 1 /* query at the final map epoch */
	}
	if i == 0 || i >= len(grids) {
		return 0, &OutOfCoverageError{What: "epoch (s past first map)",
			Val: t.Sub(hdr.Epoch).Seconds(), Min: 0,
			Max: float64(len(grids)-1) * hdr.Interval}
	}
	tt := grids[i].Time.Sub(grids[i-1].Time).Seconds()
	if tt == 0.0 {
		return 0, &OutOfCoverageError{What: "map interval", Val: 0, Min: 0, Max: 0}
	}

	v0 := grids[i-1].Vtec(hdr, lat, lon)
	v1 := grids[i].Vtec(hdr, lat, lon)
	switch {
	case math.IsNaN(v0) && math.IsNaN(v1):
		return 0, &OutOfCoverageError{What: "latitude", Val: lat, Min: hdr.Lats[1], Max: hdr.Lats[0]}
	case math.IsNaN(v0):
		return v1, nil
	case math.IsNaN(v1):
		return v0, nil
	}
	a := t.Sub(grids[i-1].Time).Seconds() / tt
	return v0*(1.0-a) + v1*a, nil
}
