// Command crsinfo lists, describes, compares and exports the well-known
// coordinate reference systems.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	crs "github.com/tingold/orb-crs"
	"github.com/tingold/orb-crs/fgb"
	"github.com/tingold/orb-crs/units"
	"github.com/tingold/orb-crs/wkt"
)

func main() {
	cobra.CheckErr(NewCmd().ExecuteContext(context.Background()))
}

func NewCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "crsinfo [command] [flags] [args]",
		Short:         "crsinfo inspects coordinate reference systems",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug messages")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered CRS",
		Args:  cobra.NoArgs,
		RunE:  doList,
	}

	wktCmd := &cobra.Command{
		Use:   "wkt [flags] <crs>",
		Short: "Print the WKT of a CRS",
		Args:  cobra.ExactArgs(1),
		RunE:  doWKT,
	}
	wktCmd.Flags().String("shift", "", "`<range>` shift longitudes to \"positive\" or \"zero\"")
	wktCmd.Flags().Int("indent", 2, "`<spaces>` per nesting level, negative for a single line")
	wktCmd.Flags().Bool("no-authority", false, "omit AUTHORITY elements")

	compareCmd := &cobra.Command{
		Use:   "compare [flags] <crs> <crs>",
		Short: "Compare two CRS",
		Args:  cobra.ExactArgs(2),
		RunE:  doCompare,
	}
	compareCmd.Flags().String("mode", "", "`<mode>` to compare with, all modes when empty")
	compareCmd.Flags().String("shift", "", "`<range>` shift the second CRS before comparing")

	exportCmd := &cobra.Command{
		Use:   "export [flags] <crs> <file.fgb>",
		Short: "Write a sample of world cities as FlatGeobuf in a CRS",
		Args:  cobra.ExactArgs(2),
		RunE:  doExport,
	}
	exportCmd.Flags().String("shift", "", "`<range>` shift longitudes to \"positive\" or \"zero\"")
	exportCmd.Flags().Bool("no-index", false, "do not write a spatial index")

	rootCmd.AddCommand(
		listCmd,
		wktCmd,
		compareCmd,
		exportCmd,
	)
	return rootCmd
}

// resolve finds a CRS by name or authority code. "UTM:<zone>N" and
// "UTM:<zone>S" build the WGS 84 UTM projections.
func resolve(name string) (*crs.CRS, error) {
	if auth, code, ok := strings.Cut(name, ":"); ok && strings.EqualFold(auth, "UTM") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) < 2 || (code[len(code)-1] != 'N' && code[len(code)-1] != 'S') {
			return nil, fmt.Errorf("invalid UTM zone %q, expected e.g. UTM:32N", code)
		}
		zone, err := strconv.Atoi(code[:len(code)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid UTM zone %q: %w", code, err)
		}
		return crs.UTM(zone, code[len(code)-1] == 'N')
	}
	c, ok := crs.DefaultRegistry().Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown CRS %q, see 'crsinfo list'", name)
	}
	return c, nil
}

// shifted applies the --shift flag of cmd to c.
func shifted(cmd *cobra.Command, c *crs.CRS) (*crs.CRS, error) {
	s, err := cmd.Flags().GetString("shift")
	if err != nil || s == "" {
		return c, err
	}
	k, err := crs.ParseAxisRangeKind(s)
	if err != nil {
		return nil, err
	}
	out := c.ShiftAxisRange(k)
	slog.Debug("shifted axis range", "crs", c.Name(), "range", k, "changed", out != c)
	return out, nil
}

func doList(cmd *cobra.Command, args []string) error {
	w := table.NewWriter()
	w.SetOutputMirror(cmd.OutOrStdout())
	style := table.StyleDefault
	style.Options.SeparateColumns = false
	style.Options.SeparateHeader = false
	style.Options.DrawBorder = false
	w.SetStyle(style)

	w.AppendHeader(table.Row{"name", "identifier", "kind", "dim"})
	for _, c := range crs.DefaultRegistry().All() {
		id := "-"
		if i, ok := c.Identifier(); ok {
			id = i.String()
		}
		w.AppendRow(table.Row{c.Name(), id, c.Kind().String(), c.Dimension()})
	}
	w.Render()
	return nil
}

func doWKT(cmd *cobra.Command, args []string) error {
	c, err := resolve(args[0])
	if err != nil {
		return err
	}
	if c, err = shifted(cmd, c); err != nil {
		return err
	}
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return err
	}
	omit, err := cmd.Flags().GetBool("no-authority")
	if err != nil {
		return err
	}

	text, _, err := wkt.Format(c, &wkt.Options{Indent: indent, OmitAuthority: omit, Logger: slog.Default()})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func doCompare(cmd *cobra.Command, args []string) error {
	a, err := resolve(args[0])
	if err != nil {
		return err
	}
	b, err := resolve(args[1])
	if err != nil {
		return err
	}
	if b, err = shifted(cmd, b); err != nil {
		return err
	}

	modes := []crs.ComparisonMode{crs.Strict, crs.ByContract, crs.IgnoreMetadata, crs.Approximate}
	if s, _ := cmd.Flags().GetString("mode"); s != "" {
		m, err := crs.ParseComparisonMode(s)
		if err != nil {
			return err
		}
		modes = []crs.ComparisonMode{m}
	}
	for _, m := range modes {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %t\n", m, a.Equals(b, m))
	}
	return nil
}

func doExport(cmd *cobra.Command, args []string) error {
	c, err := resolve(args[0])
	if err != nil {
		return err
	}
	if c, err = shifted(cmd, c); err != nil {
		return err
	}
	project, err := projector(c)
	if err != nil {
		return err
	}
	noIndex, err := cmd.Flags().GetBool("no-index")
	if err != nil {
		return err
	}

	fc := cityFeatures(project)
	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	opts := &fgb.Options{
		Name:                "world_cities",
		Description:         "Major world cities",
		IncludeIndex:        !noIndex,
		CRS:                 c,
		NormalizeLongitudes: c.Kind() == crs.Geographic,
	}
	if err := fgb.WriteFeatures(f, fc, opts); err != nil {
		return err
	}
	slog.Info("exported", "file", args[1], "crs", c.Name(), "features", len(fc.Features))
	return f.Close()
}

// maxMeridianDistance bounds, in degrees, the exported positions of a
// Transverse Mercator projection.
const maxMeridianDistance = 8

// projector maps WGS 84 longitude and latitude in degrees to the first two
// axes of c. Geographic CRS get the axis order and angular unit of c.
// Projected CRS on a geographic base run their conversion and keep positions
// within maxMeridianDistance of the central meridian, if one is given.
func projector(c *crs.CRS) (func(lon, lat float64) (orb.Point, bool), error) {
	switch c.Kind() {
	case crs.Geographic:
		return geographicProjector(c.CoordinateSystem())
	case crs.Projected:
		toBase, err := geographicProjector(c.BaseCRS().CoordinateSystem())
		if err != nil {
			return nil, err
		}
		conv := c.Conversion()
		cm, hasCM := conv.Parameter("central_meridian")
		return func(lon, lat float64) (orb.Point, bool) {
			if hasCM && math.Abs(lon-cm.Value) > maxMeridianDistance {
				return orb.Point{}, false
			}
			p, ok := toBase(lon, lat)
			if !ok {
				return p, false
			}
			out, err := conv.Transform().Transform([]float64{p[0], p[1]})
			if err != nil {
				slog.Debug("skipped position", "lon", lon, "lat", lat, "err", err)
				return orb.Point{}, false
			}
			return orb.Point{out[0], out[1]}, true
		}, nil
	}
	return nil, fmt.Errorf("cannot place cities in a %s CRS", c.Kind())
}

func geographicProjector(cs *crs.CoordinateSystem) (func(lon, lat float64) (orb.Point, bool), error) {
	if cs.Dimension() < 2 {
		return nil, fmt.Errorf("%q has %d axes", cs.Name(), cs.Dimension())
	}
	latFirst := cs.Axis(0).Direction == crs.North
	u0, u1 := cs.Axis(0).Unit, cs.Axis(1).Unit
	return func(lon, lat float64) (orb.Point, bool) {
		if latFirst {
			lon, lat = lat, lon
		}
		x, err := units.Degree.Convert(lon, u0)
		if err != nil {
			return orb.Point{}, false
		}
		y, err := units.Degree.Convert(lat, u1)
		if err != nil {
			return orb.Point{}, false
		}
		return orb.Point{x, y}, true
	}, nil
}
