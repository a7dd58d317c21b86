package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache command with management subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local derivation cache",
		Long: `Manage the local derivation cache.

Connections and rendered artifacts are cached under the user cache
directory, keyed by slide content. Entries invalidate themselves when a
slide changes; clearing is only needed to reclaim disk space.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheStatsCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached connections and artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}

			removed, freed, err := clearCacheDir(dir)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if removed == 0 {
				printInfo("Cache is already empty")
				return nil
			}
			printSuccess("Removed %d entries (%s)", removed, formatBytes(freed))
			return nil
		},
	}
}

func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count and disk usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}

			entries, size, err := statCacheDir(dir)
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			printKeyValue("location", dir)
			printKeyValue("entries", fmt.Sprintf("%d", entries))
			printKeyValue("size", formatBytes(size))
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// clearCacheDir deletes all regular files under dir and reports the count
// and bytes freed. A missing directory counts as empty.
func clearCacheDir(dir string) (int, int64, error) {
	var (
		removed int
		freed   int64
	)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		freed += info.Size()
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return removed, freed, err
	}
	return removed, freed, nil
}

// statCacheDir counts regular files under dir and sums their sizes.
// A missing directory counts as empty.
func statCacheDir(dir string) (int, int64, error) {
	var (
		entries int
		size    int64
	)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		entries++
		size += info.Size()
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return entries, size, err
	}
	return entries, size, nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
