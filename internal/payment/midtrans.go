// Package payment integrates the external payment provider.  The booking
// engine only reports refund side effects here; charging and payment
// confirmation are handled by the provider's own checkout flow.
package payment

import (
    "context"
    "fmt"
    "log"

    "github.com/midtrans/midtrans-go"
    "github.com/midtrans/midtrans-go/coreapi"
)

// MidtransGateway executes refunds through the Midtrans Core API.  It
// satisfies booking.PaymentGateway.
type MidtransGateway struct {
    client coreapi.Client
}

// NewMidtransGateway constructs a gateway with the given server key.
// production selects the live environment; otherwise the sandbox is used.
func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
    env := midtrans.Sandbox
    if production {
        env = midtrans.Production
    }
    g := &MidtransGateway{}
    g.client.New(serverKey, env)
    return g
}

// Refund asks Midtrans to refund amountCents against the order identified
// by paymentRef.  A missing reference means the reservation never reached
// the provider, so there is nothing to refund upstream and the call
// succeeds locally.
func (g *MidtransGateway) Refund(ctx context.Context, paymentRef string, amountCents uint32, reason string) error {
    if paymentRef == "" {
        log.Printf("payment: refund of %d cents has no payment reference, settling locally", amountCents)
        return nil
    }
    req := &coreapi.RefundReq{
        RefundKey: fmt.Sprintf("refund-%s", paymentRef),
        Amount:    int64(amountCents),
        Reason:    reason,
    }
    if _, err := g.client.RefundTransaction(paymentRef, req); err != nil {
        return fmt.Errorf("midtrans refund for %s: %s", paymentRef, err.GetMessage())
    }
    return nil
}
