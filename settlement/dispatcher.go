package settlement

import (
	"bytes"
	"context"
	"net/http"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	"cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/googleapis/gax-go/v2"
	"github.com/pdcgo/shared/configs"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type SweepTaskDispatcher func(ctx context.Context, req *cloudtaskspb.CreateTaskRequest, opts ...gax.CallOption) error

func NewCloudTaskSweepDispatcher(client *cloudtasks.Client) SweepTaskDispatcher {
	return func(ctx context.Context, req *cloudtaskspb.CreateTaskRequest, opts ...gax.CallOption) error {
		_, err := client.CreateTask(ctx, req)
		return err
	}
}

// NewLocalSweepDispatcher posts the task straight to the endpoint, dev
// mode without a queue. Schedule time is ignored, the sweep itself only
// confirms payments already past their deadline.
func NewLocalSweepDispatcher() SweepTaskDispatcher {
	return func(ctx context.Context, req *cloudtaskspb.CreateTaskRequest, opts ...gax.CallOption) error {
		httpreq := req.Task.GetHttpRequest()

		htreq, err := http.NewRequest(http.MethodPost, httpreq.GetUrl(), bytes.NewBuffer(httpreq.Body))
		if err != nil {
			return err
		}
		_, err = http.DefaultClient.Do(htreq)

		return err
	}
}

func NewNoopSweepDispatcher() SweepTaskDispatcher {
	return func(ctx context.Context, req *cloudtaskspb.CreateTaskRequest, opts ...gax.CallOption) error {
		return nil
	}
}

// SweepScheduler enqueues one settlement sweep run at the payment's
// auto confirm deadline.
type SweepScheduler struct {
	dispatch SweepTaskDispatcher
	cfg      *configs.DispatcherConfig
	host     string
}

func (s *SweepScheduler) Schedule(ctx context.Context, scheduleAt time.Time) error {
	task := cloudtaskspb.CreateTaskRequest{
		Parent: s.cfg.GetPath(configs.SlowQueue),
		Task: &cloudtaskspb.Task{
			ScheduleTime: timestamppb.New(scheduleAt),
			MessageType: &cloudtaskspb.Task_HttpRequest{
				HttpRequest: &cloudtaskspb.HttpRequest{
					Url:        s.host + treasury_iface.SettlementServiceSettlementSweepProcedure,
					HttpMethod: cloudtaskspb.HttpMethod_POST,
					Headers: map[string]string{
						"Content-Type": "application/json",
					},
					Body: []byte("{}"),
				},
			},
		},
	}

	return s.dispatch(ctx, &task, gax.WithTimeout(10*time.Second))
}

// SweepHost is the public base url the queue calls back on.
type SweepHost string

func NewSweepScheduler(
	dispatch SweepTaskDispatcher,
	cfg *configs.AppConfig,
	host SweepHost,
) *SweepScheduler {
	return &SweepScheduler{
		dispatch: dispatch,
		cfg:      &cfg.DispatcherConfig,
		host:     string(host),
	}
}
