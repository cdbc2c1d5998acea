package cmd

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"sitemap-manager/core/settings"
	"sitemap-manager/feature/sitemap"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	newProtocol string
	newDomain   string
	newRoot     string
	newSitemap  string
)

// newCmd configures a new sitemap and generates it.
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new sitemap",
	Long: `Adds a sitemap to the settings file and generates it from its root folder.

Examples:
  # Sitemap for the whole workspace
  new --domain www.example.com

  # Sitemap for a sub folder, replacing an existing file without asking
  new --root public --domain example.com --protocol https --yes`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newProtocol, "protocol", "", "URL protocol (http or https)")
	newCmd.Flags().StringVar(&newDomain, "domain", "", "Domain name used in entry URLs")
	newCmd.Flags().StringVar(&newRoot, "root", "", "Root folder, relative to the workspace")
	newCmd.Flags().StringVar(&newSitemap, "sitemap", "", "Sitemap path, relative to the workspace (default <root>/sitemap.xml)")
	RootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := bootstrap(ctx, bootstrapOptions{database: true})
	if err != nil {
		return err
	}
	defer rt.close()

	opts := sitemap.CreateOptions{
		Sitemap:   newSitemap,
		Protocol:  newProtocol,
		Domain:    newDomain,
		Root:      filepath.ToSlash(newRoot),
		Overwrite: yesConfirm,
	}

	out, err := rt.sitemaps.Create(ctx, sitemap.SourceCLI, opts)
	if errors.Is(err, sitemap.ErrSitemapExists) {
		target := opts.Sitemap
		if target == "" {
			target = path.Join(settings.NormalizeRoot(opts.Root), "sitemap.xml")
		}
		abs, perr := rt.sitemaps.Engine().SitemapPath(target)
		if perr != nil {
			return perr
		}
		ok, perr := sitemap.ConfirmOverwrite(stdinPrompter(), abs)
		if perr != nil {
			return perr
		}
		if !ok {
			rt.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
		opts.Overwrite = true
		out, err = rt.sitemaps.Create(ctx, sitemap.SourceCLI, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to create sitemap: %w", err)
	}

	rt.logger.Info("Sitemap created",
		zap.String("sitemap", out.Sitemap),
		zap.String("path", out.Path),
		zap.Int("entries", out.Entries),
	)
	return nil
}
