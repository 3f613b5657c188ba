package poller_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/poller"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in       string
		from, to uint64
		wantErr  bool
	}{
		{"100-200", 100, 200, false},
		{" 5-5 ", 5, 5, false},
		{"200-100", 0, 0, true},
		{"100", 0, 0, true},
		{"a-1", 0, 0, true},
		{"1-b", 0, 0, true},
		{"1-2-3", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			from, to, err := poller.ParseInterval(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func (tm *testPollerMocks) expectReplayTarget() {
	tm.store.EXPECT().GetEventListenerByID(gomock.Any(), "listener-1").
		Return(&schema.EventListener{ID: "listener-1", ContractID: "contract-1", Name: "Transfer"}, nil)
	tm.store.EXPECT().GetPromptlySync(gomock.Any(), "listener-1").
		Return(&schema.PromptlySync{EventListenerID: "listener-1"}, nil)
	contract := testContract()
	tm.store.EXPECT().GetContractByID(gomock.Any(), "contract-1").Return(&contract, nil)
}

func TestReplay_PublishesRange(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{})
	tm.expectReplayTarget()

	tm.registry.EXPECT().Network(gomock.Any(), domain.NetworkEthereum).Return(tm.network, nil)
	tm.network.EXPECT().Bind(testContractAddress, []byte(testABI)).Return(tm.contract, nil)
	tm.contract.EXPECT().Filter("Transfer").Return(tm.filter, nil)
	tm.filter.EXPECT().Query(gomock.Any(), uint64(100), uint64(200)).
		Return([]types.Log{transferLog(150), transferLog(160)}, nil)
	tm.contract.EXPECT().Normalize(gomock.Any()).Return(domain.NormalizedEvent{Event: "Transfer"}, nil).Times(2)
	tm.publisher.EXPECT().
		Publish(gomock.Any(), "events.1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ []byte, headers map[string]string) error {
			assert.True(t, strings.HasPrefix(headers["Nats-Msg-Id"], "listener-1:100-200:"))
			return nil
		})

	count, err := tm.poller.Replay(context.Background(), domain.NetworkEthereum, "listener-1", 100, 200)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestReplay_NothingFound(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{})
	tm.expectReplayTarget()

	tm.registry.EXPECT().Network(gomock.Any(), domain.NetworkEthereum).Return(tm.network, nil)
	tm.network.EXPECT().Bind(testContractAddress, []byte(testABI)).Return(tm.contract, nil)
	tm.contract.EXPECT().Filter("Transfer").Return(tm.filter, nil)
	tm.filter.EXPECT().Query(gomock.Any(), uint64(100), uint64(200)).Return(nil, nil)

	count, err := tm.poller.Replay(context.Background(), domain.NetworkEthereum, "listener-1", 100, 200)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestReplay_InvalidTargets(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(tm *testPollerMocks)
		network domain.NetworkID
	}{
		{
			name: "unknown listener",
			setup: func(tm *testPollerMocks) {
				tm.store.EXPECT().GetEventListenerByID(gomock.Any(), "listener-1").Return(nil, nil)
			},
			network: domain.NetworkEthereum,
		},
		{
			name: "listener not promptly synced",
			setup: func(tm *testPollerMocks) {
				tm.store.EXPECT().GetEventListenerByID(gomock.Any(), "listener-1").
					Return(&schema.EventListener{ID: "listener-1", ContractID: "contract-1"}, nil)
				tm.store.EXPECT().GetPromptlySync(gomock.Any(), "listener-1").Return(nil, nil)
			},
			network: domain.NetworkEthereum,
		},
		{
			name:    "contract on another network",
			setup:   func(tm *testPollerMocks) { tm.expectReplayTarget() },
			network: domain.NetworkPolygon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestPoller(t, poller.Config{})
			tt.setup(tm)

			_, err := tm.poller.Replay(context.Background(), tt.network, "listener-1", 1, 2)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}
