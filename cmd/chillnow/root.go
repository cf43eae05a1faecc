// chillnow — консольный клиент маркетплейса ChillNow: каталог заведений
// и событий, аккаунт, объявления анонсёра, оплата авансов через CinetPay.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chillnow/chillnow-client/internal/api"
	"github.com/chillnow/chillnow-client/internal/config"
	"github.com/chillnow/chillnow-client/internal/credstore/filestore"
	"github.com/chillnow/chillnow-client/internal/session"
	"github.com/chillnow/chillnow-client/pkg/log"
)

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chillnow",
		Short:         "Клиент маркетплейса ChillNow",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "путь к файлу конфигурации")

	cmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newWhoamiCmd(),
		newCategoriesCmd(),
		newAnnoncesCmd(),
		newProfileCmd(),
		newPayCmd(),
		newNotificationsCmd(),
	)

	return cmd
}

// app — собранные зависимости команды: конфигурация, логгер, HTTP-клиент
// и менеджер сессии с уже выполненным Restore.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *api.Client
	session *session.Manager
}

// newApp строит зависимости и восстанавливает сессию из хранилища.
func newApp(ctx context.Context) (*app, context.Context, error) {
	const op = "main.newApp"

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, ctx, fmt.Errorf("%s: %w", op, err)
	}

	logger := log.Setup(cfg.Env)
	slog.SetDefault(logger)
	ctx = log.Into(ctx, logger)

	client, err := api.New(cfg.API)
	if err != nil {
		return nil, ctx, fmt.Errorf("%s: %w", op, err)
	}

	dir, err := cfg.Credentials.ResolveDir()
	if err != nil {
		return nil, ctx, fmt.Errorf("%s: %w", op, err)
	}

	store, err := filestore.New(dir)
	if err != nil {
		return nil, ctx, fmt.Errorf("%s: %w", op, err)
	}

	mgr := session.New(store, client)
	mgr.Restore(ctx)

	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		session: mgr,
	}, ctx, nil
}

// requireAuth проверяет, что сессия восстановлена.
func (a *app) requireAuth() error {
	if !a.session.Current().Authenticated() {
		return fmt.Errorf("vous n'êtes pas connecté: lancez `chillnow login`")
	}

	return nil
}
