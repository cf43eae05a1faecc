package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chillnow/chillnow-client/internal/models"
	"github.com/chillnow/chillnow-client/internal/schedule"
)

func newAnnoncesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annonces",
		Short: "Объявления: заведения, события, столики",
	}

	cmd.AddCommand(
		newAnnoncesListCmd(),
		newAnnoncesSearchCmd(),
		newAnnoncesShowCmd(),
		newAnnoncesMineCmd(),
		newAnnoncesDeleteCmd(),
	)

	return cmd
}

func newAnnoncesListCmd() *cobra.Command {
	var filter models.AnnonceFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Листинг объявлений",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			annonces, err := a.client.Annonces(ctx, filter)
			if err != nil {
				return err
			}

			printAnnonces(annonces)
			return nil
		},
	}

	cmd.Flags().Int64Var(&filter.Categorie, "categorie", 0, "id рубрики")
	cmd.Flags().Int64Var(&filter.SousCategorie, "sous-categorie", 0, "id подрубрики")
	cmd.Flags().StringVar(&filter.Search, "search", "", "строка поиска")

	return cmd
}

func newAnnoncesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <запрос>",
		Short: "Поиск объявлений",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			annonces, err := a.client.SearchAnnonces(ctx, args[0])
			if err != nil {
				return err
			}

			printAnnonces(annonces)
			return nil
		},
	}
}

func newAnnoncesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Карточка объявления с расписанием и тарифами",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id: %q", args[0])
			}

			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			annonce, err := a.client.AnnonceByID(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s / %s)\n", annonce.Titre, annonce.CategorieNom, annonce.SousCategorieNom)
			fmt.Println(annonce.Description)
			fmt.Printf("Adresse: %s\n", annonce.Localisation)
			if annonce.DateEvenement != "" {
				fmt.Printf("Date: %s\n", annonce.DateEvenement)
			}

			for _, slot := range schedule.Group(annonce.Horaires) {
				fmt.Printf("%s: %s\n", slot.Jours, slot.Horaires)
			}

			for _, t := range annonce.Tarifs {
				fmt.Printf("%s — %.0f XOF (id=%d)\n", t.Nom, t.Prix, t.ID)
			}

			return nil
		},
	}
}

func newAnnoncesMineCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Мои объявления (анонсёр)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.requireAuth(); err != nil {
				return err
			}

			var annonces []models.Annonce
			switch kind {
			case "chills":
				annonces, err = a.client.MyChills(ctx)
			case "tickets":
				annonces, err = a.client.MyTickets(ctx)
			default:
				annonces, err = a.client.MyAnnonces(ctx)
			}
			if err != nil {
				return err
			}

			printAnnonces(annonces)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "фильтр: chills | tickets")

	return cmd
}

func newAnnoncesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удаление объявления",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("некорректный id: %q", args[0])
			}

			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.requireAuth(); err != nil {
				return err
			}

			if err := a.client.DeleteAnnonce(ctx, id); err != nil {
				return err
			}

			fmt.Println("Annonce supprimée")
			return nil
		},
	}
}

func printAnnonces(annonces []models.Annonce) {
	for _, an := range annonces {
		active := ""
		if !an.EstActif {
			active = " (inactif)"
		}
		fmt.Printf("%d\t%s — %s%s\n", an.ID, an.Titre, an.CategorieNom, active)
	}
}
