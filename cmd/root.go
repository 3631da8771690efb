package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	awsclient "github.com/yourusername/bucket-browser/aws"
	"github.com/yourusername/bucket-browser/cache"
	"github.com/yourusername/bucket-browser/config"
	"github.com/yourusername/bucket-browser/fetch"
	"github.com/yourusername/bucket-browser/listing"
	"github.com/yourusername/bucket-browser/logging"
	"github.com/yourusername/bucket-browser/types"
)

// rootOptions carries the persistent flags shared by every subcommand
type rootOptions struct {
	flags      config.Settings
	configPath string

	// settings is filled in by PersistentPreRunE
	settings config.Settings
}

// NewRootCmd builds the bucket-browser command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bucket-browser",
		Short: "Browse, search and profile S3 bucket listings",
		Long: `bucket-browser fetches one ListBucketResult document, either from a URL or
straight from S3, and lets you search and sort its objects.

Commands:
  ls       print matching objects as a table or JSON
  profile  write summary, metadata and partition reports
  serve    expose the listing over an HTTP JSON API
  browse   interactive search-as-you-type terminal browser`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.flags.URL, "url", "u", "", "URL of a ListBucketResult document")
	pf.StringVarP(&opts.flags.Bucket, "bucket", "b", "", "S3 bucket to list")
	pf.StringVar(&opts.flags.Prefix, "prefix", "", "Key prefix to list (with --bucket)")
	pf.Int32Var(&opts.flags.MaxKeys, "max-keys", 0, "Maximum keys per listing (with --bucket, 0 = service default)")
	pf.StringVarP(&opts.flags.Region, "region", "r", "", "AWS region (default us-east-1)")
	pf.StringVarP(&opts.flags.Profile, "profile", "p", "", "AWS profile name; requests are unsigned without one")
	pf.StringVar(&opts.flags.Endpoint, "endpoint", "", "Custom S3 endpoint (path-style)")
	pf.StringVar(&opts.flags.CachePath, "cache", "", "Path of a local document cache")
	pf.BoolVar(&opts.flags.Offline, "offline", false, "Serve documents from the cache only")
	pf.StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/bucket-browser/config.yaml)")
	pf.StringVar(&opts.flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(
		newLsCmd(opts),
		newProfileCmd(opts),
		newServeCmd(opts),
		newBrowseCmd(opts),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// resolve merges the config file under the flags and configures logging
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// --sort and --output-dir belong to subcommands and are merged there
	flags := o.flags
	if f := cmd.Flags().Lookup("sort"); f != nil {
		flags.Sort = f.Value.String()
	}
	if f := cmd.Flags().Lookup("output-dir"); f != nil {
		flags.OutputDir = f.Value.String()
	}

	o.settings = cfg.Merge(flags)
	if err := logging.Setup(o.settings.LogLevel, cmd.ErrOrStderr()); err != nil {
		return err
	}
	return o.settings.Validate()
}

// newFetcher builds the fetcher for the configured source. The returned close
// func releases the cache, if any, and is always safe to call.
func (o *rootOptions) newFetcher(ctx context.Context) (fetch.Fetcher, func() error, error) {
	s := o.settings
	noop := func() error { return nil }

	var f fetch.Fetcher
	if s.URL != "" {
		f = fetch.NewHTTPFetcher(s.URL)
	} else {
		client, err := awsclient.NewClient(ctx, awsclient.Options{
			Profile:  s.Profile,
			Region:   s.Region,
			Endpoint: s.Endpoint,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create AWS client: %w", err)
		}
		f = awsclient.NewFetcher(client, s.Bucket, s.Prefix, s.MaxKeys)
	}

	if s.CachePath == "" {
		return f, noop, nil
	}

	store, err := cache.Open(s.CachePath)
	if err != nil {
		return nil, noop, err
	}
	log.Debug().Str("path", s.CachePath).Bool("offline", s.Offline).Msg("Using document cache")
	return cache.NewFetcher(f, store, s.Offline), store.Close, nil
}

// loadListing fetches and parses one document from the configured source
func (o *rootOptions) loadListing(ctx context.Context) (*types.BucketListing, error) {
	f, closeFn, err := o.newFetcher(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	log.Debug().Str("source", f.Source()).Msg("Fetching listing")
	doc, err := f.Fetch(ctx)
	if err != nil {
		if errors.Is(err, cache.ErrNotCached) {
			return nil, fmt.Errorf("%s is not in the cache; run once without --offline: %w", f.Source(), err)
		}
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}

	parsed, err := listing.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing from %s: %w", f.Source(), err)
	}
	if parsed.IsTruncated {
		log.Warn().Str("bucket", parsed.Name).Msg("Listing is truncated; only the first page is shown")
	}
	return parsed, nil
}
