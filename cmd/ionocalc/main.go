/*------------------------------------------------------------------------------
* ionocalc : command line driver for the ionolab library
*
* usage, see `ionocalc help`. a station file in toml format supplies the
* receiver position and model defaults:
*
*   lat = 55.75
*   lon = 37.62
*   height = 150.0
*   frequency = 1.602e9
*   shellheight = 450000.0
*-----------------------------------------------------------------------------*/

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/naoina/toml"
	"github.com/spf13/cobra"

	"ionolab"
)

type station struct {
	Lat         float64
	Lon         float64
	Height      float64
	Frequency   float64
	ShellHeight float64
}

var (
	cfgFile  string
	trace    int
	sta      = station{Frequency: ionolab.FREQ1_GLO, ShellHeight: ionolab.HION}
	lat, lon float64
	epoch    string
	elev, az float64
	freq     float64
	interp   bool
)

func loadStation() error {
	if cfgFile == "" {
		return nil
	}
	td, err := os.ReadFile(cfgFile)
	if err != nil {
		return err
	}
	return toml.Unmarshal(td, &sta)
}

func readIonex(file string) (*ionolab.GridHeader, []ionolab.TecGrid, error) {
	td, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, err
	}
	hdr, grids, sum, err := ionolab.ParseIonex(string(td))
	if err != nil {
		return nil, nil, err
	}
	if sum.SkippedRows > 0 || sum.TokenWarnings > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d rows skipped, %d bad tokens\n",
			sum.SkippedRows, sum.TokenWarnings)
	}
	return hdr, grids, nil
}

func readRaster(lbl, img string) (*ionolab.DemRaster, error) {
	lb, err := os.ReadFile(lbl)
	if err != nil {
		return nil, err
	}
	params, err := ionolab.ParsePdsLabel(string(lb))
	if err != nil {
		return nil, err
	}
	ib, err := os.ReadFile(img)
	if err != nil {
		return nil, err
	}
	return ionolab.ReadDemRaster(ib, params)
}

var rootCmd = &cobra.Command{
	Use:   "ionocalc",
	Short: "ionospheric delay and lunar dem calculations",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if trace > 0 {
			ionolab.TraceOpen("")
			ionolab.TraceLevel(trace)
		}
		return loadStation()
	},
}

var vtecCmd = &cobra.Command{
	Use:   "vtec <ionex-file>",
	Short: "interpolate vertical tec at a point and epoch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hdr, grids, err := readIonex(args[0])
		if err != nil {
			return err
		}
		t := hdr.Epoch
		if epoch != "" {
			if t, err = time.Parse(time.RFC3339, epoch); err != nil {
				return err
			}
		} else if len(grids) > 1 {
			/* midpoint of the first interval so interpolation is exercised */
			t = grids[0].Time.Add(grids[1].Time.Sub(grids[0].Time) / 2)
		}
		v, err := ionolab.VtecAt(hdr, grids, t, lat, lon)
		if err != nil {
			return err
		}
		fmt.Printf("%s lat=%.3f lon=%.3f vtec=%.3f TECU\n", t.Format(time.RFC3339), lat, lon, v)
		return nil
	},
}

var delayCmd = &cobra.Command{
	Use:   "delay <ionex-file>",
	Short: "slant ionospheric delay along a line of sight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hdr, grids, err := readIonex(args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("lat") {
			sta.Lat, sta.Lon = lat, lon
		}
		if freq > 0 {
			sta.Frequency = freq
		}
		model := ionolab.IonoModel{ShellHeight: sta.ShellHeight, Radius: ionolab.RE_MEAN}

		latp, lonp, err := model.PiercePoint(sta.Lat, sta.Lon, elev, az)
		if err != nil {
			return err
		}
		t := hdr.Epoch
		if epoch != "" {
			if t, err = time.Parse(time.RFC3339, epoch); err != nil {
				return err
			}
		}
		v, err := ionolab.VtecAt(hdr, grids, t, latp, lonp)
		if errors.Is(err, ionolab.ErrOutOfCoverage) && len(grids) > 0 {
			/* single-map files: fall back to the map itself */
			v = grids[0].Vtec(hdr, latp, lonp)
			err = nil
		}
		if err != nil {
			return err
		}
		dm, err := model.Delay(v, elev, sta.Frequency)
		if err != nil {
			return err
		}
		ds, _ := model.DelaySeconds(v, elev, sta.Frequency)
		fmt.Printf("ipp lat=%.3f lon=%.3f vtec=%.3f TECU\n", latp, lonp, v)
		fmt.Printf("delay=%.4f m (%.3f ns)\n", dm, ds*1e9)
		return nil
	},
}

var glonavCmd = &cobra.Command{
	Use:   "glonav <nav-file>",
	Short: "summarize glonass broadcast ephemerides",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		td, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		sats, sum, err := ionolab.ParseGloNav(string(td))
		if err != nil {
			return err
		}
		for prn, ephs := range sats {
			for _, e := range ephs {
				fmt.Printf("R%02d %s frq=%2d svh=%d lat=%8.3f lon=%8.3f hgt=%8.1f km\n",
					prn, e.Time.Format("2006-01-02 15:04:05"), e.Frq, e.Svh, e.Lat, e.Lon, e.Hgt)
			}
		}
		fmt.Printf("records=%d skipped=%d\n", sum.Records, sum.SkippedRecords)
		return nil
	},
}

var demstatCmd = &cobra.Command{
	Use:   "demstat <label-file> <img-file>",
	Short: "decode a pds dem raster and print its statistics",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := readRaster(args[0], args[1])
		if err != nil {
			return err
		}
		s := r.Stats()
		fmt.Printf("%dx%d px, %.1f m/px, %s\n", r.Params.LineSamples, r.Params.Lines,
			r.Params.MapScale, r.Params.MapProjectionType)
		fmt.Printf("min=%.1f max=%.1f mean=%.1f m (sphere %.1f m)\n", s.Min, s.Max, s.Mean,
			r.Params.Offset)
		if s.Suspect {
			fmt.Println("warning: values outside the plausible lunar range;" +
				" check SAMPLE_TYPE and SCALING_FACTOR in the label")
		}
		return nil
	},
}

var heightCmd = &cobra.Command{
	Use:   "height <label-file> <img-file>",
	Short: "look up dem height at a geographic point",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := readRaster(args[0], args[1])
		if err != nil {
			return err
		}
		var h float64
		if interp {
			h, err = r.HeightAtInterpolated(lat, lon)
		} else {
			h, err = r.HeightAt(lat, lon)
		}
		if err != nil {
			return err
		}
		fmt.Printf("lat=%.4f lon=%.4f height=%.2f m radius=%.2f m\n",
			lat, lon, h, h+r.Params.Offset)
		return nil
	},
}

var packCmd = &cobra.Command{
	Use:   "pack <label-file> <img-file> <out-archive>",
	Short: "pack a dem raster and its parameters into an archive",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := readRaster(args[0], args[1])
		if err != nil {
			return err
		}
		f, err := os.Create(args[2])
		if err != nil {
			return err
		}
		defer f.Close()
		return ionolab.WriteDemArchive(f, r)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "station toml file")
	rootCmd.PersistentFlags().IntVar(&trace, "trace", 0, "trace level (0:off)")

	for _, c := range []*cobra.Command{vtecCmd, delayCmd, heightCmd} {
		c.Flags().Float64Var(&lat, "lat", 0, "latitude (deg)")
		c.Flags().Float64Var(&lon, "lon", 0, "longitude (deg)")
	}
	vtecCmd.Flags().StringVar(&epoch, "epoch", "", "epoch (RFC3339)")
	delayCmd.Flags().StringVar(&epoch, "epoch", "", "epoch (RFC3339)")
	delayCmd.Flags().Float64Var(&elev, "el", 90, "elevation angle (deg)")
	delayCmd.Flags().Float64Var(&az, "az", 0, "azimuth angle (deg)")
	delayCmd.Flags().Float64Var(&freq, "freq", 0, "carrier frequency (Hz)")
	heightCmd.Flags().BoolVar(&interp, "interp", false, "bilinear interpolation")

	rootCmd.AddCommand(vtecCmd, delayCmd, glonavCmd, demstatCmd, heightCmd, packCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
