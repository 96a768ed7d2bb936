package dto

// ChargeRequest asks the gateway to charge the amount for a reservation. Method may be
// empty when the user never picked one.
type ChargeRequest struct {
	IdempotencyKey string `json:"idempotency_key" validate:"required"`
	ReservationID  string `json:"reservation_id"  validate:"required"`
	Amount         int64  `json:"amount"          validate:"gte=0"`
	Method         string `json:"method"`
}
