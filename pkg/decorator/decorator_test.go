package decorator_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/architeacher/users/pkg/decorator"
	"github.com/architeacher/users/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type recordingMetrics struct {
	mu       sync.Mutex
	counters map[string]int64
	observed map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		counters: make(map[string]int64),
		observed: make(map[string]int),
	}
}

func (m *recordingMetrics) Inc(_ context.Context, key string, value any, _ ...attribute.KeyValue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := value.(int); ok {
		m.counters[key] += int64(v)
	}
}

func (m *recordingMetrics) Observe(_ context.Context, key string, _ float64, _ ...attribute.KeyValue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.observed[key]++
}

func (m *recordingMetrics) Shutdown(context.Context) error { return nil }

type FindByGroupQuery struct {
	GroupName string
}

type DeleteMemberCommand struct {
	Email string
}

type stubQueryHandler struct {
	err error
}

func (h stubQueryHandler) Execute(_ context.Context, q FindByGroupQuery) ([]string, error) {
	if h.err != nil {
		return nil, h.err
	}

	return []string{q.GroupName + "@example.com"}, nil
}

func TestApplyQueryDecorators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		handlerErr    error
		expectCounter string
		expectStatus  codes.Code
		expectLog     string
	}{
		{
			name:          "success is counted and traced",
			expectCounter: "queries.findbygroupquery.success",
			expectStatus:  codes.Unset,
		},
		{
			name:          "failure is counted, traced and logged",
			handlerErr:    errors.New("database unavailable"),
			expectCounter: "queries.findbygroupquery.failure",
			expectStatus:  codes.Error,
			expectLog:     "failed to execute query",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			recorder := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
			mc := newRecordingMetrics()
			buf := &bytes.Buffer{}

			handler := decorator.ApplyQueryDecorators[FindByGroupQuery, []string](
				stubQueryHandler{err: tc.handlerErr},
				logger.NewBufferedTestLogger(buf),
				mc,
				tp,
			)

			_, err := handler.Execute(context.Background(), FindByGroupQuery{GroupName: "eng"})
			if tc.handlerErr != nil {
				require.ErrorIs(t, err, tc.handlerErr)
			} else {
				require.NoError(t, err)
			}

			require.Equal(t, int64(1), mc.counters[tc.expectCounter])
			require.Equal(t, 1, mc.observed["queries.findbygroupquery.duration"])

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			require.Equal(t, "query.FindByGroupQuery", spans[0].Name())
			require.Equal(t, tc.expectStatus, spans[0].Status().Code)

			if tc.expectLog != "" {
				require.Contains(t, buf.String(), tc.expectLog)
			}
		})
	}
}

func TestApplyCommandDecorators(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	mc := newRecordingMetrics()
	buf := &bytes.Buffer{}

	handler := decorator.ApplyCommandDecorators[DeleteMemberCommand, struct{}](
		decorator.CommandHandlerFunc[DeleteMemberCommand, struct{}](
			func(context.Context, DeleteMemberCommand) (struct{}, error) {
				return struct{}{}, nil
			},
		),
		logger.NewBufferedTestLogger(buf),
		mc,
		tp,
	)

	_, err := handler.Handle(context.Background(), DeleteMemberCommand{Email: "a@example.com"})

	require.NoError(t, err)
	require.Equal(t, int64(1), mc.counters["commands.deletemembercommand.success"])
	require.Contains(t, buf.String(), "command executed successfully")
	require.Contains(t, buf.String(), `"command":"DeleteMemberCommand"`)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "command.DeleteMemberCommand", spans[0].Name())
}

func TestApplyQueryDecorators_PointerQueryName(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	handler := decorator.ApplyQueryDecorators[*FindByGroupQuery, int](
		decorator.QueryHandlerFunc[*FindByGroupQuery, int](func(context.Context, *FindByGroupQuery) (int, error) {
			return 1, nil
		}),
		logger.NewTestLogger(),
		newRecordingMetrics(),
		tp,
	)

	_, err := handler.Execute(context.Background(), &FindByGroupQuery{GroupName: "eng"})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "query.FindByGroupQuery", spans[0].Name())
}
