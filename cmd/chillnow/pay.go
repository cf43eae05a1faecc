package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chillnow/chillnow-client/internal/models"
	"github.com/chillnow/chillnow-client/internal/payment"
)

func newPayCmd() *cobra.Command {
	var (
		req         models.PaymentRequest
		description string
	)

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Оплата аванса по объявлению через CinetPay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.requireAuth(); err != nil {
				return err
			}

			resp, err := a.client.CreatePayment(ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("Paiement %s: avance %.0f XOF sur %.0f XOF (%.0f%%)\n",
				resp.ID, resp.MontantAvance, resp.MontantTotal, resp.TauxAvance)

			user := a.session.Current().User
			billing := models.BillingInfo{
				FirstName: user.FirstName,
				LastName:  user.LastName,
				Email:     user.Email,
				Phone:     user.PhoneNumber,
				Address:   user.Address,
				City:      user.City,
			}

			checkout := payment.NewCheckout(a.cfg.CinetPay, resp, description, billing)

			bridge, err := payment.NewBridge(ctx, a.cfg.CinetPay.CallbackAddr())
			if err != nil {
				return err
			}
			defer bridge.Close()

			checkout.NotifyURL = bridge.URL()

			// Сеанс чекаута отдаётся как есть: страница оплаты открывается
			// вне клиента, исход приходит на мост.
			payload, err := json.MarshalIndent(checkout, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(payload))
			fmt.Printf("En attente du paiement (bridge: %s)...\n", bridge.URL())

			result, err := bridge.WaitResult(ctx)
			if err != nil {
				return err
			}

			switch result.Status {
			case payment.StatusSuccess:
				fmt.Println("Paiement réussi")
			case payment.StatusFailed:
				fmt.Println("Le paiement a échoué")
			case payment.StatusClosed:
				fmt.Println("Paiement annulé")
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&req.Annonce, "annonce", 0, "id объявления")
	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "сумма в XOF")
	cmd.Flags().StringVar(&req.PaymentType, "type", models.PaymentTypeTicket, "ticket | table")
	cmd.Flags().Int64Var(&req.Tarif, "tarif", 0, "id тарифа")
	cmd.Flags().StringVar(&description, "description", "", "описание платежа")
	_ = cmd.MarkFlagRequired("annonce")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
