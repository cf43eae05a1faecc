package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Рубрики каталога",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			categories, err := a.client.Categories(ctx)
			if err != nil {
				return err
			}

			for _, c := range categories {
				fmt.Printf("%d\t%s\n", c.ID, c.Nom)
				for _, sc := range c.SousCategories {
					fmt.Printf("\t%d\t%s\n", sc.ID, sc.Nom)
				}
			}
			return nil
		},
	}
}
