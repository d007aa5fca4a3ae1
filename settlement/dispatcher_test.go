package settlement_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"connectrpc.com/connect"
	"github.com/googleapis/gax-go/v2"
	"github.com/pdcgo/shared/authorization/authorization_mock"
	"github.com/pdcgo/shared/configs"
	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/shared/pkg/moretest/moretest_mock"
	"github.com/pdcgo/treasury_service/settlement"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_mock"
	"github.com/pdcgo/treasury_service/treasury_model"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestPaymentCreateSchedulesSweep(t *testing.T) {
	var db gorm.DB

	moretest.Suite(t, "testing sweep scheduling on create",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			treasury_mock.MigrateTreasury(&db),
			treasury_mock.SeedSnapshot(&db),
		},
		func(t *testing.T) {
			ctx := context.Background()

			var dispatched *cloudtaskspb.CreateTaskRequest
			var dispatch settlement.SweepTaskDispatcher = func(ctx context.Context, req *cloudtaskspb.CreateTaskRequest, opts ...gax.CallOption) error {
				dispatched = req
				return nil
			}

			scheduler := settlement.NewSweepScheduler(
				dispatch,
				&configs.AppConfig{},
				"http://localhost:8081",
			)
			service := settlement.NewSettlementService(&db, &authorization_mock.EmptyAuthorizationMock{
				AuthIdentityMock: &authorization_mock.AuthIdentityMock{
					IdentityMock: &authorization_mock.IdentityMock{
						ID: 20,
					},
				},
			}, scheduler)

			res, err := service.PaymentCreate(ctx, &connect.Request[treasury_iface.PaymentCreateRequest]{
				Msg: &treasury_iface.PaymentCreateRequest{
					Kind:      string(treasury_model.StudentFeeKind),
					Method:    string(treasury_model.MobileMoneyMethod),
					Amount:    25_000,
					StudentId: 3,
				},
			})

			assert.Nil(t, err)
			assert.Equal(t, string(treasury_model.PaymentPendingReview), res.Msg.Status)

			deadline := time.UnixMicro(res.Msg.AutoConfirmAt)
			until := time.Until(deadline)
			assert.True(t, until > 23*time.Hour)
			assert.True(t, until <= settlement.AutoConfirmDelay)

			assert.NotNil(t, dispatched)
			httpreq := dispatched.Task.GetHttpRequest()
			assert.True(t, strings.HasSuffix(
				httpreq.GetUrl(),
				treasury_iface.SettlementServiceSettlementSweepProcedure,
			))
			assert.Equal(t, deadline.Unix(), dispatched.Task.ScheduleTime.AsTime().Unix())
		},
	)
}
