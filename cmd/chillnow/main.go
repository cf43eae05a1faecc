package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chillnow/chillnow-client/internal/apierrors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Классифицированные ошибки показываем пользовательским текстом,
		// остальные — как есть.
		if apierrors.KindOf(err) != 0 {
			fmt.Fprintln(os.Stderr, apierrors.UserMessage(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
