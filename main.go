// transmerge merges filled-in missing-translation reports back into a
// project's translation files, keeping the key order of the base locale.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/minios-linux/transmerge/analyze"
	"github.com/minios-linux/transmerge/apply"
	"github.com/minios-linux/transmerge/config"
	"github.com/minios-linux/transmerge/console"
	"github.com/minios-linux/transmerge/format"
	"github.com/minios-linux/transmerge/i18n"
	"github.com/minios-linux/transmerge/locale"
	"github.com/minios-linux/transmerge/project"
	"github.com/minios-linux/transmerge/tree"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	appFs = afero.NewOsFs()
	log   = console.Stderr()
)

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir    string
	configPath string
	noColor    bool
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "transmerge",
		Short: "Merge missing-translation reports into translation files",
		Long: `transmerge keeps secondary locales in step with the base locale.

Workflow:
  analyze   Write a report of translations missing from each locale
  (edit)    Translators fill in the report
  apply     Merge the report back into the translation files

Configuration is read from .transmerge.yaml in the project root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default <root>/"+config.FileName+")")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newApplyCmd(),
		newAnalyzeCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(appFs, rootDir, configPath)
}

// resolveDir makes a flag path relative to the project root.
func resolveDir(dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(rootDir, dir)
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "transmerge version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// apply
// ---------------------------------------------------------------------------

func newApplyCmd() *cobra.Command {
	var (
		outDir    string
		localeTag string
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Merge missing-translation reports into translation files",
		Long: `Read the missing-translation reports and merge them into the translation
files of their locales. Keys follow the order of the base locale; keys only
the destination knows are kept after them, new keys are appended last.

Without --locale, reports that were not edited since the last analysis and
reports for locales that are complete are skipped.`,
		Example: `  transmerge apply
  transmerge apply --locale de
  transmerge apply --outdir reports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var opts apply.Options
			opts.OutDir = resolveDir(outDir)
			if localeTag != "" {
				l, err := locale.Parse(localeTag)
				if err != nil {
					return fmt.Errorf("--locale: %w", err)
				}
				opts.Locale = l
			}

			reporter := console.NewReporter(log, rootDir, !quiet)
			if err := apply.NewApplier(appFs, cfg, reporter).Apply(opts); err != nil {
				return err
			}
			reporter.Summary()
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", "", "Directory containing the reports (default: report_directory or input_directory)")
	cmd.Flags().StringVar(&localeTag, "locale", "", "Apply only this locale")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not list added keys")

	return cmd
}

// ---------------------------------------------------------------------------
// analyze
// ---------------------------------------------------------------------------

func newAnalyzeCmd() *cobra.Command {
	var (
		outDir     string
		split      bool
		formatName string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Write reports of missing translations",
		Long: `Compare every locale with the base locale and write the missing keys,
with their base values, to a report file for translators.

By default one file holds all locales. With --split, one file per locale
is written.`,
		Example: `  transmerge analyze
  transmerge analyze --split --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			t := cfg.InputFileType()
			if formatName != "" {
				var ok bool
				if t, ok = format.FromExt(formatName); !ok {
					return fmt.Errorf("--format: %w %q (valid: json, yaml)", format.ErrUnsupportedFileType, formatName)
				}
			}

			dir := resolveDir(outDir)
			if dir == "" {
				dir = cfg.ReportDirectory
			}
			if dir == "" {
				dir = cfg.InputDirectory
			}

			model, err := project.Load(appFs, cfg)
			if err != nil {
				return err
			}
			missing := analyze.Missing(model)

			paths, err := analyze.WriteReports(appFs, model, missing, analyze.ReportOptions{
				Dir:    dir,
				Prefix: cfg.ReportPrefix,
				Type:   t,
				Split:  split,
			})
			if err != nil {
				return err
			}

			if len(missing) == 0 {
				log.Success("%s", i18n.T("No missing translations"))
				return nil
			}
			for _, l := range model.Locales() {
				if m, ok := missing[l]; ok {
					log.Info("%s", i18n.Tf("<%s>: %s", l.Tag(), i18n.N("%d missing key", "%d missing keys", m.LeafCount())))
				}
			}
			for _, p := range paths {
				log.Success("%s", i18n.Tf("Wrote %s", relPath(p)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", "", "Directory to write reports to (default: report_directory or input_directory)")
	cmd.Flags().BoolVar(&split, "split", false, "Write one report file per locale")
	cmd.Flags().StringVar(&formatName, "format", "", "Report format: json or yaml (default: type of input files)")

	return cmd
}

// ---------------------------------------------------------------------------
// status (read-only: translation statistics)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show translation statistics",
		Long: `Show the configuration in use and, for every locale, how many of the base
locale's keys are translated. Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			model, err := project.Load(appFs, cfg)
			if err != nil {
				return err
			}
			showStatus(cfg, model)
			return nil
		},
	}
}

// localeStats is the translation progress of one locale.
type localeStats struct {
	Locale     locale.Locale
	Total      int
	Translated int
}

func (s localeStats) Percent() int {
	if s.Total == 0 {
		return 100
	}
	return s.Translated * 100 / s.Total
}

func collectStats(model *project.Model) []localeStats {
	total := 0
	for _, t := range model.Base() {
		total += t.LeafCount()
	}
	missing := analyze.Missing(model)

	var stats []localeStats
	for _, l := range model.Locales() {
		s := localeStats{Locale: l, Total: total, Translated: total}
		if m, ok := missing[l]; ok {
			s.Translated -= m.LeafCount()
		}
		stats = append(stats, s)
	}
	return stats
}

func showStatus(cfg *config.Config, model *project.Model) {
	log.Title("%s", i18n.T("Project"))
	log.Plain("  %-16s %s", i18n.T("Input:"), relPath(cfg.InputDirectory))
	log.Plain("  %-16s %s", i18n.T("Base locale:"), cfg.BaseLocale.Tag())
	namespaces := tree.SortedKeys(model.Base())
	if cfg.Namespaces {
		log.Plain("  %-16s %s", i18n.T("Namespaces:"), strings.Join(namespaces, ", "))
	}

	stats := collectStats(model)
	width := 0
	for _, s := range stats {
		width = max(width, len(s.Locale.Tag()))
	}

	log.Title("%s", i18n.T("Translation Statistics"))
	for _, s := range stats {
		name := console.LocaleName(s.Locale)
		log.Plain("  %-*s %s (%d/%d) %s", width, s.Locale.Tag(), progressBar(s.Percent(), 20), s.Translated, s.Total, name)
	}
}

// progressBar renders percent as a colored bar of width cells followed by
// the percentage.
func progressBar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100

	c := color.New(color.FgGreen)
	switch {
	case percent < 50:
		c = color.New(color.FgRed)
	case percent < 100:
		c = color.New(color.FgYellow)
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", c.Sprint(bar), percent)
}

func relPath(path string) string {
	if rel, err := filepath.Rel(rootDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
