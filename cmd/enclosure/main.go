// Command enclosure generates the Arduino Mega DIN rail enclosure and writes
// the base and lid solids in the requested output formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/soypat/enclosure"
	"github.com/soypat/enclosure/export"
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/helpers/matter"
	"github.com/spf13/cobra"
)

// defaultFormats covers the full deliverable set: print files, CAD
// exchange and the documentation top view for both parts.
const defaultFormats = "stl,step,svg"

type options struct {
	outDir     string
	resolution int
	formats    string
	configPath string
	only       string
	material   string
	preview    bool
	watch      bool
	verbose    bool
}

func main() {
	var opt options
	cmd := &cobra.Command{
		Use:   "enclosure",
		Short: "Generate a two-part DIN rail enclosure for an Arduino Mega with LCD hat",
		Long: `enclosure builds the base and lid solids of a 3D printable Arduino Mega
enclosure and exports them for printing (STL), CAD exchange (STEP) and
documentation (SVG top view, PNG preview). Dimensions can be overridden
with a YAML parameter file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opt)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opt.outDir, "out", "o", ".", "output directory")
	f.IntVar(&opt.resolution, "resolution", 300, "mesh cells along the longest axis")
	f.StringVar(&opt.formats, "formats", defaultFormats, "comma separated output formats: stl,step,svg,png")
	f.StringVar(&opt.configPath, "config", "", "YAML parameter overrides file")
	f.StringVar(&opt.only, "only", "", "generate a single part: base or lid")
	f.StringVar(&opt.material, "material", "", "compensate for material shrinkage: pla")
	f.BoolVar(&opt.preview, "preview", false, "also write PNG previews")
	f.BoolVar(&opt.watch, "watch", false, "regenerate whenever the config file changes")
	f.BoolVarP(&opt.verbose, "verbose", "v", false, "debug logging")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opt options) error {
	logrus.SetLevel(logrus.InfoLevel)
	if opt.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	formats, err := export.ParseFormats(opt.formats)
	if err != nil {
		return err
	}
	if opt.preview {
		formats = appendFormat(formats, export.FormatPNG)
	}
	switch opt.only {
	case "", "base", "lid":
	default:
		return fmt.Errorf("unknown part %q", opt.only)
	}
	switch opt.material {
	case "", "pla":
	default:
		return fmt.Errorf("unknown material %q", opt.material)
	}
	if err := os.MkdirAll(opt.outDir, 0o755); err != nil {
		return err
	}

	if !opt.watch {
		return generate(opt, formats)
	}
	if opt.configPath == "" {
		return fmt.Errorf("--watch requires --config")
	}
	return watch(opt, formats)
}

func generate(opt options, formats []export.Format) error {
	p := enclosure.DefaultParams()
	if opt.configPath != "" {
		var err error
		p, err = enclosure.LoadParams(opt.configPath)
		if err != nil {
			return err
		}
	}

	start := time.Now()
	parts := map[string]func(enclosure.Params) (sdf.SDF3, *enclosure.BuildReport, error){
		"base": enclosure.Base,
		"lid":  enclosure.Lid,
	}
	for _, name := range []string{"base", "lid"} {
		if opt.only != "" && opt.only != name {
			continue
		}
		s, report, err := parts[name](p)
		if err != nil {
			return err
		}
		for _, fr := range report.Fillets {
			logrus.WithFields(logrus.Fields{
				"solid": name, "op": fr.Op, "tier": fr.Tier.String(), "radius": fr.Radius,
			}).Info("fillet result")
		}
		if opt.material == "pla" {
			s = matter.PLA.Scale(s)
		}
		if err := export.Write(opt.outDir, name, s, opt.resolution, formats); err != nil {
			return err
		}
	}
	logrus.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("done")
	return nil
}

// watch regenerates on every write to the config file. Editors replace the
// file instead of writing in place more often than not, so the watch is on
// the parent directory and filtered by name.
func watch(opt options, formats []export.Format) error {
	if err := generate(opt, formats); err != nil {
		logrus.WithError(err).Error("generate failed")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	cfg, err := filepath.Abs(opt.configPath)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(cfg)); err != nil {
		return err
	}
	logrus.WithField("config", cfg).Info("watching for changes")

	var timer *time.Timer
	debounced := make(chan struct{}, 1)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !sameFile(ev.Name, cfg) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			// Collapse editor write bursts into one rebuild.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case debounced <- struct{}{}:
				default:
				}
			})
		case <-debounced:
			logrus.Info("config changed, regenerating")
			if err := generate(opt, formats); err != nil {
				logrus.WithError(err).Error("generate failed")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("watch error")
		}
	}
}

func sameFile(a, b string) bool {
	aa, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	return aa == b
}

func appendFormat(formats []export.Format, f export.Format) []export.Format {
	for _, have := range formats {
		if have == f {
			return formats
		}
	}
	return append(formats, f)
}
