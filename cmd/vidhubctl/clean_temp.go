package main

import (
	"os"
	"path/filepath"
	"time"

	"vidhub/internal/errors"
	"vidhub/internal/util"

	"github.com/spf13/cobra"
)

const defaultOlderThan = 24 * time.Hour

// NewCleanTempCmd creates the clean-temp subcommand.
func NewCleanTempCmd() *cobra.Command {
	var (
		olderThan time.Duration
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "clean-temp",
		Short: "Remove stale staged uploads",
		Long: `Remove entries of media.tempDir last modified before --older-than.
Requests clean up after themselves; this catches what a crash left behind.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}

			removed, err := cleanTempDir(cfg.Media.TempDir, olderThan, time.Now(), dryRun)
			for _, path := range removed {
				cmd.Println(path)
			}
			if err != nil {
				return err
			}

			verb := "Removed"
			if dryRun {
				verb = "Would remove"
			}
			cmd.Printf("%s %d entries older than %s from %s\n",
				verb, len(removed), util.FormatDuration(olderThan), cfg.Media.TempDir)

			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", defaultOlderThan, "minimum age of an entry before it is removed")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the entries without removing them")

	return cmd
}

// cleanTempDir removes the top-level entries of dir modified before
// now-olderThan and returns their paths. A missing dir is not an error.
func cleanTempDir(dir string, olderThan time.Duration, now time.Time, dryRun bool) ([]string, error) {
	if olderThan <= 0 {
		return nil, errors.New("--older-than must be positive")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrapf(err, "failed to read %s", dir)
	}

	cutoff := now.Add(-olderThan)
	var removed []string
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !dryRun {
			if err := os.RemoveAll(path); err != nil {
				return removed, errors.Wrapf(err, "failed to remove %s", path)
			}
		}
		removed = append(removed, path)
	}

	return removed, nil
}
