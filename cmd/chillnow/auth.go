package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chillnow/chillnow-client/internal/models"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход по email и паролю",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := a.client.Login(ctx, email, password)
			if err != nil {
				return err
			}

			if err := a.session.SignIn(ctx, resp.Access, resp.Refresh, resp.User); err != nil {
				return err
			}

			fmt.Printf("Connecté: %s %s <%s>\n", resp.User.FirstName, resp.User.LastName, resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "пароль")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Завершение сессии",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.session.SignOut(ctx); err != nil {
				return err
			}

			fmt.Println("Déconnecté")
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var req models.RegisterRequest
	var annonceur bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового аккаунта",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			var resp *models.LoginResponse
			if annonceur {
				resp, err = a.client.RegisterAnnonceur(ctx, req, nil)
			} else {
				resp, err = a.client.Register(ctx, req)
			}
			if err != nil {
				return err
			}

			if err := a.session.SignIn(ctx, resp.Access, resp.Refresh, resp.User); err != nil {
				return err
			}

			fmt.Printf("Compte créé: %s\n", resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.Password, "password", "", "пароль")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "имя")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "фамилия")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "телефон")
	cmd.Flags().BoolVar(&annonceur, "annonceur", false, "аккаунт анонсёра")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Текущая сессия",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			s := a.session.Current()
			if !s.Authenticated() {
				fmt.Println("Non connecté")
				return nil
			}

			fmt.Printf("%s %s <%s> — %s (id=%d)\n",
				s.User.FirstName, s.User.LastName, s.User.Email, s.User.Role, s.User.ID)
			return nil
		},
	}
}
