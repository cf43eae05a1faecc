package models

// Типы платежа, которые принимает бэкенд.
const (
	PaymentTypeTicket = "ticket"
	PaymentTypeTable  = "table"
)

// PaymentRequest — создание платежа по объявлению.
// Tarif — id выбранной позиции прайса, Amount — сумма в XOF.
type PaymentRequest struct {
	Annonce     int64   `json:"annonce"`
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"payment_type"`
	Tarif       int64   `json:"tarif"`
}

// PaymentResponse — созданный платёж.
//
// MontantAvance — аванс к оплате через шлюз (доля TauxAvance от
// MontantTotal); остаток вносится на месте.
type PaymentResponse struct {
	ID            string  `json:"id"`
	MontantTotal  float64 `json:"montant_total"`
	MontantAvance float64 `json:"montant_avance"`
	TauxAvance    float64 `json:"taux_avance"`
}

// BillingInfo — платёжные реквизиты покупателя для чекаута.
type BillingInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
}
