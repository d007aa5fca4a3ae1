package settlement

import (
	"context"

	"connectrpc.com/connect"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_model"
)

// PaymentGet implements treasury_iface.SettlementService.
func (s *settlementServiceImpl) PaymentGet(
	ctx context.Context,
	req *connect.Request[treasury_iface.PaymentGetRequest],
) (*connect.Response[treasury_iface.PaymentGetResponse], error) {
	var err error
	result := treasury_iface.PaymentGetResponse{}
	pay := req.Msg

	var payment treasury_model.Payment
	err = s.db.
		WithContext(ctx).
		Model(&treasury_model.Payment{}).
		First(&payment, pay.PaymentId).
		Error

	if err != nil {
		return connect.NewResponse(&result), err
	}

	result.Payment = payment.Iface()
	return connect.NewResponse(&result), nil
}
