package checkout

type PayRequest struct {
	PaymentMethodID string `json:"paymentMethodId" validate:"required"`
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
}
