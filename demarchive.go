/*------------------------------------------------------------------------------
* demarchive.go : dem raster packaging
*
* notes  : the archive is a zip with two entries: params.json carrying every
*          DemRasterParams field and elevation.bin carrying the row-major
*          float32 elevation array in little-endian order. the round trip is
*          exact; the absolute-radius array is derivable (RadiusAt) and is
*          not stored
*-----------------------------------------------------------------------------*/

package ionolab

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

const (
	archiveParamsName = "params.json"
	archiveElevName   = "elevation.bin"
)

/* write dem archive -----------------------------------------------------------
* pack a raster and its parameters into a zip archive
*-----------------------------------------------------------------------------*/
func WriteDemArchive(w io.Writer, r *DemRaster) error {
	zw := zip.NewWriter(w)

	pw, err := zw.Create(archiveParamsName)
	if err != nil {
		return err
	}
	if err = json.NewEncoder(pw).Encode(&r.Params); err != nil {
		return err
	}

	ew, err := zw.Create(archiveElevName)
	if err != nil {
		return err
	}
	buf := make([]byte, 4*len(r.Elevation))
	for i, v := range r.Elevation {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	if _, err = ew.Write(buf); err != nil {
		return err
	}
	return zw.Close()
}

/* read dem archive ------------------------------------------------------------
* unpack a raster written by WriteDemArchive
*-----------------------------------------------------------------------------*/
func ReadDemArchive(data []byte) (*DemRaster, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var raster DemRaster
	open := func(name string) ([]byte, error) {
		f, err := zr.Open(name)
		if err != nil {
			return nil, fmt.Errorf("%w: archive entry %s", ErrMalformedRecord, name)
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	pb, err := open(archiveParamsName)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(pb, &raster.Params); err != nil {
		return nil, err
	}

	eb, err := open(archiveElevName)
	if err != nil {
		return nil, err
	}
	n := raster.Params.Lines * raster.Params.LineSamples
	if len(eb) != 4*n {
		return nil, fmt.Errorf("%w: elevation array is %d bytes, want %d",
			ErrMalformedRecord, len(eb), 4*n)
	}
	raster.Elevation = make([]float32, n)
	for i := range raster.Elevation {
		raster.Elevation[i] = math.Float32frombits(binary.LittleEndian.Uint32(eb[4*i:]))
	}
	return &raster, nil
}
