package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/internal/archive"
	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/paths"
	"github.com/thoreinstein/s4m/internal/saves"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configured folders and what they contain",
	Long: `Show the folders s4m uses and a summary of each: DLC and mod counts
by state, save games, and backups per folder.

Folders that are missing are reported, not treated as errors.`,
	Example: `  s4m status
  s4m status --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStatusWithWriter(cmd.OutOrStdout())
	},
}

// entryCounts counts entries by state.
type entryCounts struct {
	Enabled  int `json:"enabled"`
	Disabled int `json:"disabled"`
}

// folderStatus describes one managed folder.
type folderStatus struct {
	Path  string `json:"path"`
	Found bool   `json:"found"`
	Error string `json:"error,omitempty"`
}

type backupStatus struct {
	Count  int       `json:"count"`
	Latest time.Time `json:"latest,omitzero"`
}

// statusReport is the full status, also the JSON output.
type statusReport struct {
	ConfigFile string `json:"config_file"`

	Game folderStatus `json:"game_dir"`
	DLC  *entryCounts `json:"dlc,omitempty"`

	Mods       folderStatus `json:"mods_dir"`
	ModsCounts *entryCounts `json:"mods,omitempty"`

	Saves        folderStatus   `json:"saves_dir"`
	SavesSummary *saves.Summary `json:"saves,omitempty"`

	BackupDir string                  `json:"backup_dir"`
	Backups   map[string]backupStatus `json:"backups"`
}

func runStatusWithWriter(w io.Writer) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	report := collectStatus(cfg)
	if statusJSON {
		return cli.WriteJSON(w, report)
	}
	outputStatusText(w, report)
	return nil
}

func collectStatus(cfg *config.Config) *statusReport {
	r := &statusReport{
		ConfigFile: config.FileUsed(),
		Game:       folderStatus{Path: cfg.GameDir},
		Mods:       folderStatus{Path: cfg.ModsDir()},
		Saves:      folderStatus{Path: cfg.SavesDir()},
		BackupDir:  cfg.BackupDir,
		Backups:    make(map[string]backupStatus),
	}

	if entries, ok := scanFolder(&r.Game, entry.CategoryDLC); ok {
		r.DLC = count(entries)
	}
	if entries, ok := scanFolder(&r.Mods, entry.CategoryMod); ok {
		r.ModsCounts = count(entries)
	}

	if r.Saves.Path != "" {
		sum, err := saves.Summarize(r.Saves.Path)
		if err != nil {
			r.Saves.Error = err.Error()
		} else {
			r.Saves.Found = true
			r.SavesSummary = sum
		}
	}

	for _, label := range []string{paths.ModsFolder, paths.SavesFolder} {
		var bs backupStatus
		if recs, err := archive.List(cfg.BackupDir, label); err == nil {
			bs = backupStatus{Count: len(recs), Latest: recs[0].CreatedAt}
		}
		r.Backups[label] = bs
	}
	return r
}

// scanFolder scans f and records whether it was found.
func scanFolder(f *folderStatus, category entry.Category) ([]entry.Entry, bool) {
	if f.Path == "" {
		return nil, false
	}
	entries, err := entry.Scan(f.Path, category)
	if err != nil {
		f.Error = err.Error()
		return nil, false
	}
	f.Found = true
	return entries, true
}

func count(entries []entry.Entry) *entryCounts {
	c := &entryCounts{}
	for _, e := range entries {
		if e.Enabled() {
			c.Enabled++
		} else {
			c.Disabled++
		}
	}
	return c
}

func outputStatusText(w io.Writer, r *statusReport) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s %s\n\n", bold("Config:"), r.ConfigFile)

	fmt.Fprintf(w, "%s %s\n", bold("Game:"), folderLine(r.Game))
	if r.DLC != nil {
		fmt.Fprintf(w, "  DLC: %d enabled, %d disabled\n", r.DLC.Enabled, r.DLC.Disabled)
	}

	fmt.Fprintf(w, "%s %s\n", bold("Mods:"), folderLine(r.Mods))
	if r.ModsCounts != nil {
		fmt.Fprintf(w, "  %d enabled, %d disabled\n", r.ModsCounts.Enabled, r.ModsCounts.Disabled)
	}

	fmt.Fprintf(w, "%s %s\n", bold("Saves:"), folderLine(r.Saves))
	if s := r.SavesSummary; s != nil {
		fmt.Fprintf(w, "  %d saves, %s\n", s.SaveCount, saves.FormatSize(s.TotalSize))
	}

	fmt.Fprintf(w, "%s %s\n", bold("Backups:"), r.BackupDir)
	for _, label := range []string{paths.ModsFolder, paths.SavesFolder} {
		bs := r.Backups[label]
		if bs.Count == 0 {
			fmt.Fprintf(w, "  %-6s none\n", label)
			continue
		}
		fmt.Fprintf(w, "  %-6s %d, newest %s\n", label, bs.Count, bs.Latest.Format("2006-01-02 15:04"))
	}
}

func folderLine(f folderStatus) string {
	switch {
	case f.Found:
		return f.Path
	case f.Path == "":
		return color.YellowString("not set")
	default:
		return fmt.Sprintf("%s %s", f.Path, color.RedString("(not found)"))
	}
}
