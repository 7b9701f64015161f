package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"FlamingBooks/internal/catalog"
)

func newBooksCmd(root *rootOptions) *cobra.Command {
	var (
		featured bool
		limit    int
		filter   catalog.Filter
	)

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.load()
			if err != nil {
				return err
			}

			var books []catalog.Book
			if featured {
				books = c.FeaturedBooks(limit)
			} else {
				books = c.SearchBooks(filter)
				if limit > 0 && len(books) > limit {
					books = books[:limit]
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tCATEGORY\tPRICE\tSTOCK")
			for _, b := range books {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", b.ID, b.Title, b.Author, b.Category, b.Price.StringFixed(2), b.Stock)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&featured, "featured", false, "only featured books")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 for all)")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "match title or author")
	cmd.Flags().StringVar(&filter.Category, "category", "", "category filter")
	cmd.Flags().StringVar(&filter.Author, "author", "", "author filter")
	return cmd
}
