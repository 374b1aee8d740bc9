package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hdrgroup/internal/metacache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the metadata cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

// withCache opens the configured cache for a maintenance command. A cache file
// that does not exist yet is reported and fn is not called.
func withCache(cmd *cobra.Command, ctx *commandContext, fn func(*metacache.Cache) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !cfg.Cache.Enabled {
		fmt.Fprintln(out, "Metadata cache is disabled in configuration")
	}
	if _, err := os.Stat(cfg.Cache.Path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(out, "No metadata cache at %s\n", cfg.Cache.Path)
		return nil
	}
	cache, err := metacache.Open(cfg.Cache.Path, logger)
	if err != nil {
		return fmt.Errorf("open metadata cache: %w", err)
	}
	defer cache.Close()
	return fn(cache)
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show metadata cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, ctx, func(cache *metacache.Cache) error {
				n, err := cache.Count(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Path:    %s\n", cache.Path())
				fmt.Fprintf(out, "Entries: %d\n", n)
				return nil
			})
		},
	}
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove cache entries for files that were moved, deleted, or edited",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, ctx, func(cache *metacache.Cache) error {
				removed, err := cache.Prune(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d stale %s\n", removed, plural(removed, "entry", "entries"))
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cache entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withCache(cmd, ctx, func(cache *metacache.Cache) error {
				removed, err := cache.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d %s\n", removed, plural(removed, "entry", "entries"))
				return nil
			})
			if !errors.Is(err, metacache.ErrSchemaMismatch) {
				return err
			}
			cfg, _ := ctx.ensureConfig()
			if err := metacache.Remove(cfg.Cache.Path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed incompatible cache at %s\n", cfg.Cache.Path)
			return nil
		},
	}
}
