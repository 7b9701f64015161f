// Command catalogctl lists and checks a storefront content directory without
// starting the catalog service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"FlamingBooks/internal/catalog"
)

type rootOptions struct {
	contentDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect a storefront content directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.contentDir, "content", envOr("CONTENT_DIR", "content"), "content directory")

	root.AddCommand(newBooksCmd(opts), newCheckCmd(opts))
	return root
}

func (o *rootOptions) load() (*catalog.Catalog, error) {
	return catalog.LoadDir(o.contentDir, catalog.Options{})
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "catalogctl:", err)
		os.Exit(1)
	}
}
