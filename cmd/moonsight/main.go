// Command moonsight is a CLI front end over the moonsight library: it
// downloads and verifies SPK kernels, and prints crescent-sighting and
// moon-phase reports for a given observer and date.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/crescentlab/moonsight"
	"github.com/crescentlab/moonsight/guidance"
	"github.com/crescentlab/moonsight/kernelcache"
	"github.com/crescentlab/moonsight/observer"
	"github.com/crescentlab/moonsight/spk"
	"github.com/crescentlab/moonsight/units"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultKernel is the kernel this CLI knows how to fetch by name; callers
// wanting a different kernel point --config at a viper config file that
// overrides "kernel.url"/"kernel.name"/"kernel.sha256".
func defaultKernel() kernelcache.Entry {
	return kernelcache.Entry{
		Name:   viper.GetString("kernel.name"),
		URL:    viper.GetString("kernel.url"),
		SHA256: viper.GetString("kernel.sha256"),
	}
}

func init() {
	viper.SetDefault("kernel.name", "de442s.bsp")
	viper.SetDefault("kernel.url", "https://naif.jpl.nasa.gov/pub/naif/generic_kernels/spk/planets/de442s.bsp")
	viper.SetDefault("kernel.sha256", "")
	viper.SetDefault("bestTimeMethod", "optimized")
}

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:   "moonsight",
		Short: "New-crescent-moon visibility calculator",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (viper: TOML/YAML/JSON)")
	cobra.OnInitialize(func() {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			_ = viper.ReadInConfig() // missing/invalid config file is not fatal; defaults apply
		}
	})

	root.AddCommand(downloadKernelsCmd(), verifyKernelsCmd(), sightingCmd(), phaseCmd(), benchmarkCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func downloadKernelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download-kernels",
		Short: "Download and cache the default SPK kernel",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := defaultKernel()
			path, data, err := kernelcache.Fetch(e)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cached %s (%d bytes) at %s\n", e.Name, len(data), path)
			return nil
		},
	}
}

func verifyKernelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-kernels",
		Short: "Verify the cached kernel parses and matches its checksum",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := defaultKernel()
			ok, err := kernelcache.Verified(e)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s is not cached or fails its checksum; run download-kernels first", e.Name)
			}
			path, err := kernelcache.Path(e)
			if err != nil {
				return err
			}
			buf, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if _, err := spk.Open(buf); err != nil {
				return fmt.Errorf("%s failed to parse: %w", e.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: checksum and parse OK\n", e.Name)
			return nil
		},
	}
}

func sightingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sighting <lat> <lon> [YYYY-MM-DD]",
		Short: "Print a crescent-sighting report for an observer and date",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parsing latitude: %w", err)
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parsing longitude: %w", err)
			}
			date := time.Now().UTC()
			if len(args) == 3 {
				date, err = time.Parse("2006-01-02", args[2])
				if err != nil {
					return fmt.Errorf("parsing date: %w", err)
				}
			}

			loadActiveKernelIfCached()

			obs := observer.New(fmt.Sprintf("%.4f,%.4f", lat, lon), lat, lon, 0)
			opts := moonsight.DefaultOptions()
			if viper.GetString("bestTimeMethod") == "heuristic" {
				opts.BestTimeMethod = moonsight.BestTimeHeuristic
			}

			report, err := moonsight.Report(date, obs, opts)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), guidance.Summary(report))
			fmt.Fprintf(cmd.OutOrStdout(), "verdict: %s\n", guidance.Verdict(report))
			if report.SightingPossible {
				fmt.Fprintf(cmd.OutOrStdout(), "moon azimuth: %s   altitude: %s\n",
					formatDMS(*report.MoonAzimuthDeg), formatDMS(*report.MoonAltitudeDeg))
			}
			return nil
		},
	}
}

func phaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phase [YYYY-MM-DD]",
		Short: "Print the Moon's phase and illuminated fraction for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var when *time.Time
			if len(args) == 1 {
				t, err := time.Parse("2006-01-02", args[0])
				if err != nil {
					return fmt.Errorf("parsing date: %w", err)
				}
				when = &t
			}
			result := moonsight.MoonPhase(when)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %.1f%% illuminated, elongation %s\n",
				result.Date.Format("2006-01-02"), result.Phase, result.IlluminatedFraction*100,
				formatDMS(result.ElongationDeg))
			return nil
		},
	}
}

func benchmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark",
		Short: "Time repeated moon-phase and moon-position computations",
		RunE: func(cmd *cobra.Command, args []string) error {
			const n = 1000
			now := time.Now().UTC()

			start := time.Now()
			for i := 0; i < n; i++ {
				t := now.Add(time.Duration(i) * time.Hour)
				moonsight.MoonPhase(&t)
			}
			phaseElapsed := time.Since(start)

			start = time.Now()
			for i := 0; i < n; i++ {
				t := now.Add(time.Duration(i) * time.Hour)
				moonsight.MoonPosition(&t, 51.5074, -0.1278, 10)
			}
			positionElapsed := time.Since(start)

			fmt.Fprintf(cmd.OutOrStdout(), "MoonPhase:    %d calls in %s (%s/call)\n", n, phaseElapsed, phaseElapsed/n)
			fmt.Fprintf(cmd.OutOrStdout(), "MoonPosition: %d calls in %s (%s/call)\n", n, positionElapsed, positionElapsed/n)
			return nil
		},
	}
}

// loadActiveKernelIfCached installs the cached default kernel as the active
// kernel, if one is present and verified; otherwise sighting falls back to
// the Meeus provider silently, per moonsight's two-mode design.
func loadActiveKernelIfCached() {
	e := defaultKernel()
	ok, err := kernelcache.Verified(e)
	if err != nil || !ok {
		return
	}
	path, err := kernelcache.Path(e)
	if err != nil {
		return
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_, _ = moonsight.InitKernel(buf)
}

// formatDMS renders an angle in degrees using units.Angle's sign/degree/
// minute/second decomposition.
func formatDMS(deg float64) string {
	sign, d, m, s := units.AngleFromDegrees(deg).DMS()
	sym := "+"
	if sign < 0 {
		sym = "-"
	}
	return fmt.Sprintf("%s%d°%02d'%04.1f\"", sym, d, m, s)
}
