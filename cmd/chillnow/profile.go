package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chillnow/chillnow-client/internal/models"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Профиль пользователя",
	}

	cmd.AddCommand(newProfileShowCmd(), newProfileUpdateCmd())

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Показать профиль",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.requireAuth(); err != nil {
				return err
			}

			user, err := a.client.Profile(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
			fmt.Printf("Rôle: %s\n", user.Role)
			if user.PhoneNumber != "" {
				fmt.Printf("Téléphone: %s\n", user.PhoneNumber)
			}
			if user.City != "" {
				fmt.Printf("Ville: %s\n", user.City)
			}
			return nil
		},
	}
}

func newProfileUpdateCmd() *cobra.Command {
	var req models.UpdateProfileRequest

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Обновить профиль",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.requireAuth(); err != nil {
				return err
			}

			user, err := a.client.UpdateProfile(ctx, req)
			if err != nil {
				return err
			}

			// Синхронизируем локальную сессию с обновлённым профилем;
			// отказ записи — ошибка для пользователя, а не тихое
			// расхождение памяти с хранилищем.
			if err := a.session.UpdateUser(ctx, *user); err != nil {
				return err
			}

			fmt.Println("Profil mis à jour")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "имя")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "фамилия")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "телефон")
	cmd.Flags().StringVar(&req.Address, "address", "", "адрес")
	cmd.Flags().StringVar(&req.City, "city", "", "город")

	return cmd
}
