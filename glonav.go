/*------------------------------------------------------------------------------
* glonav.go : glonass broadcast navigation file parser
*
* notes  : records are 4 lines each: prn + epoch + clock terms, then three
*          position/velocity/acceleration lines carrying health, frequency
*          channel and age in the 4th column. tokens are frequently glued
*          D-exponent fields, recovered by ExtractNumbers. a record missing
*          its data lines is skipped and counted, never aborting the file
*-----------------------------------------------------------------------------*/

package ionolab

import (
	"sort"
	"strings"
	"time"
)

/* two-digit years are windowed at 80 per the rinex convention ---------------*/
func navYear(y int) int {
	switch {
	case y >= 1000:
		return y
	case y < 80:
		return y + 2000
	default:
		return y + 1900
	}
}

/* decode one record from lines[i:]; returns ok and the next line index ------*/
func decodeGloRecord(lines []string, i int, sum *ParseSummary) (GloEph, bool, int) {
	var eph GloEph

	tok, nw := ExtractNumbers(lines[i])
	sum.TokenWarnings += nw
	if len(tok) < 10 {
		return eph, false, i + 1
	}
	eph.Prn = int(tok[0])
	sec := int(tok[6])
	eph.Time = time.Date(navYear(int(tok[1])), time.Month(int(tok[2])), int(tok[3]),
		int(tok[4]), int(tok[5]), sec, int((tok[6]-float64(sec))*1e9), time.UTC)
	eph.TauN = -tok[7] /* -taun */
	eph.GamN = tok[8]  /* +gamman */
	eph.Tk = tok[9]
	i++

	var cols [3][4]float64
	for k := 0; k < 3; k++ {
		if i >= len(lines) {
			return eph, false, i
		}
		tok, nw = ExtractNumbers(lines[i])
		sum.TokenWarnings += nw
		if len(tok) < 4 || len(tok) >= 7 {
			/* short line, or the header of the next record standing in for a
			 * missing data line: drop the record, keep the line */
			return eph, false, i
		}
		copy(cols[k][:], tok[:4])
		i++
	}

	for k := 0; k < 3; k++ {
		eph.Pos[k] = cols[k][0]
		eph.Vel[k] = cols[k][1]
		eph.Acc[k] = cols[k][2]
	}
	eph.Svh = int(cols[0][3])
	eph.Frq = int(cols[1][3])
	eph.Age = int(cols[2][3])

	/* some receivers output >128 for minus frequency numbers */
	if eph.Frq > 128 {
		eph.Frq -= 256
	}
	if eph.Frq < MINFREQ_GLO || MAXFREQ_GLO < eph.Frq {
		Trace(2, "glonass nav invalid freq: prn=%2d fn=%d\n", eph.Prn, eph.Frq)
	}

	eph.Lat, eph.Lon, eph.Hgt = Ecef2Geodetic(eph.Pos[0], eph.Pos[1], eph.Pos[2],
		RE_PZ90/1000.0, FE_PZ90)
	return eph, true, i
}

/* parse glonass navigation text -----------------------------------------------
* parse a rinex-style glonass broadcast navigation file
* args   : string text      I   whole-file content
* return : per-prn time-ordered ephemeris sequences, parse summary, error
* notes  : well-formed records are kept even when neighbouring records are
*          malformed; skipped records are counted in the summary
*-----------------------------------------------------------------------------*/
func ParseGloNav(text string) (map[int][]GloEph, *ParseSummary, error) {
	var sum ParseSummary

	Trace(4, "ParseGloNav: len=%d\n", len(text))

	lines := strings.Split(text, "\n")
	i := 0
	for j, line := range lines {
		if strings.Contains(line, "END OF HEADER") {
			i = j + 1
			break
		}
	}

	sats := make(map[int][]GloEph)
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		eph, ok, next := decodeGloRecord(lines, i, &sum)
		if !ok {
			/* count only candidates that announced a record */
			if tok, _ := ExtractNumbers(lines[i]); len(tok) >= 7 || next > i+1 {
				Trace(2, "glonass nav record skipped at line %d\n", i+1)
				sum.SkippedRecords++
			}
			i = next
			continue
		}
		if eph.Prn <= 0 {
			sum.SkippedRecords++
			i = next
			continue
		}
		sats[eph.Prn] = append(sats[eph.Prn], eph)
		sum.Records++
		i = next
	}

	for prn := range sats {
		s := sats[prn]
		sort.SliceStable(s, func(a, b int) bool { return s[a].Time.Before(s[b].Time) })
		sats[prn] = s
	}

	Trace(5, "ParseGloNav: records=%d skipped=%d\n", sum.Records, sum.SkippedRecords)
	return sats, &sum, nil
}
