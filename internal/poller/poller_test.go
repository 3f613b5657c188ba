package poller_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/mocks"
	"github.com/feral-file/ff-event-scanner/internal/poller"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

const (
	testContractAddress = "0x00000000000000000000000000000000000000aa"
	testABI             = `[{"type":"event","name":"Transfer","inputs":[]}]`
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testPollerMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	registry  *mocks.MockNetworkRegistry
	network   *mocks.MockNetwork
	contract  *mocks.MockBoundContract
	filter    *mocks.MockEventFilter
	cache     *mocks.MockSyncHeightCache
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	poller    *poller.Poller
}

func setupTestPoller(t *testing.T, cfg poller.Config) *testPollerMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tm := &testPollerMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		registry:  mocks.NewMockNetworkRegistry(ctrl),
		network:   mocks.NewMockNetwork(ctrl),
		contract:  mocks.NewMockBoundContract(ctrl),
		filter:    mocks.NewMockEventFilter(ctrl),
		cache:     mocks.NewMockSyncHeightCache(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	tm.network.EXPECT().ID().Return(domain.NetworkEthereum).AnyTimes()

	tm.poller = poller.New(cfg, tm.store, tm.registry, tm.cache, tm.publisher, tm.clock, adapter.NewJSON())
	return tm
}

func testContract() schema.Contract {
	return schema.Contract{
		ID:      "contract-1",
		Network: domain.NetworkEthereum,
		Address: testContractAddress,
		ABI:     datatypes.JSON(testABI),
		Enabled: true,
	}
}

// expectOneListener sets up a tick over a single contract with a single promptly listener
func (tm *testPollerMocks) expectOneListener(head uint64) {
	tm.network.EXPECT().BlockNumber(gomock.Any()).Return(head, nil)
	tm.store.EXPECT().CountScannableContracts(gomock.Any(), domain.NetworkEthereum).Return(int64(1), nil)
	tm.store.EXPECT().
		ListScannableContracts(gomock.Any(), domain.NetworkEthereum, 100, 0).
		Return([]schema.Contract{testContract()}, nil)
	tm.store.EXPECT().
		ListPromptlyListeners(gomock.Any(), []string{"contract-1"}).
		Return([]schema.EventListener{{ID: "listener-1", ContractID: "contract-1", Name: "Transfer"}}, nil)
	tm.network.EXPECT().Bind(testContractAddress, []byte(testABI)).Return(tm.contract, nil)
	tm.contract.EXPECT().Filter("Transfer").Return(tm.filter, nil)
}

func transferLog(block uint64) types.Log {
	return types.Log{
		Address:     common.HexToAddress(testContractAddress),
		BlockNumber: block,
		TxHash:      common.BigToHash(common.Big2),
	}
}

func TestTick_CursorPositions(t *testing.T) {
	tests := []struct {
		name   string
		cursor uint64
		cached bool
		setTo  *uint64
	}{
		{name: "missing cursor starts at head", cached: false, setTo: ptr(1000)},
		{name: "cursor too far behind jumps to head", cursor: 990, cached: true, setTo: ptr(1000)},
		{name: "cursor at head waits", cursor: 1000, cached: true},
		{name: "cursor past head waits", cursor: 1001, cached: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestPoller(t, poller.Config{})
			tm.expectOneListener(1000)
			tm.cache.EXPECT().Get(gomock.Any(), "listener-1").Return(tt.cursor, tt.cached, nil)
			if tt.setTo != nil {
				tm.cache.EXPECT().Set(gomock.Any(), "listener-1", *tt.setTo).Return(nil)
			}

			require.NoError(t, tm.poller.Tick(context.Background(), tm.network))
		})
	}
}

func TestTick_PublishesMatchedEvents(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{})
	tm.expectOneListener(1000)

	tm.cache.EXPECT().Get(gomock.Any(), "listener-1").Return(uint64(997), true, nil)
	tm.filter.EXPECT().Query(gomock.Any(), uint64(997), uint64(1000)).
		Return([]types.Log{transferLog(998), transferLog(1000)}, nil)
	tm.contract.EXPECT().Normalize(gomock.Any()).DoAndReturn(func(l types.Log) (domain.NormalizedEvent, error) {
		return domain.NormalizedEvent{BlockNumber: l.BlockNumber, Event: "Transfer", Args: map[string]interface{}{}}, nil
	}).Times(2)

	var published domain.EventsMessage
	tm.publisher.EXPECT().
		Publish(gomock.Any(), "events.1", gomock.Any(), map[string]string{"Nats-Msg-Id": "listener-1:997-1000"}).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ map[string]string) error {
			return json.Unmarshal(data, &published)
		})
	tm.cache.EXPECT().Set(gomock.Any(), "listener-1", uint64(1001)).Return(nil)

	require.NoError(t, tm.poller.Tick(context.Background(), tm.network))

	assert.Equal(t, domain.EventsContract{ID: "contract-1", Network: domain.NetworkEthereum, Address: testContractAddress}, published.Contract)
	assert.Equal(t, domain.EventsListener{ID: "listener-1", Name: "Transfer"}, published.Listener)
	assert.Equal(t, uint64(997), published.From)
	assert.Equal(t, uint64(1000), published.To)
	require.Len(t, published.Events, 2)
	assert.Equal(t, uint64(998), published.Events[0].BlockNumber)
}

func TestTick_NoMatchesAdvancesWithoutPublishing(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{})
	tm.expectOneListener(1000)

	tm.cache.EXPECT().Get(gomock.Any(), "listener-1").Return(uint64(999), true, nil)
	tm.filter.EXPECT().Query(gomock.Any(), uint64(999), uint64(1000)).Return(nil, nil)
	tm.cache.EXPECT().Set(gomock.Any(), "listener-1", uint64(1001)).Return(nil)

	require.NoError(t, tm.poller.Tick(context.Background(), tm.network))
}

func TestTick_PublishFailureKeepsCursor(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{})
	tm.expectOneListener(1000)

	tm.cache.EXPECT().Get(gomock.Any(), "listener-1").Return(uint64(999), true, nil)
	tm.filter.EXPECT().Query(gomock.Any(), uint64(999), uint64(1000)).Return([]types.Log{transferLog(1000)}, nil)
	tm.contract.EXPECT().Normalize(gomock.Any()).Return(domain.NormalizedEvent{BlockNumber: 1000}, nil)
	tm.publisher.EXPECT().Publish(gomock.Any(), "events.1", gomock.Any(), gomock.Any()).Return(errors.New("nats down"))

	err := tm.poller.Tick(context.Background(), tm.network)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish events")
}

func TestTick_UndecodableLogsAreDropped(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{})
	tm.expectOneListener(1000)

	tm.cache.EXPECT().Get(gomock.Any(), "listener-1").Return(uint64(999), true, nil)
	tm.filter.EXPECT().Query(gomock.Any(), uint64(999), uint64(1000)).Return([]types.Log{transferLog(1000)}, nil)
	tm.contract.EXPECT().Normalize(gomock.Any()).Return(domain.NormalizedEvent{}, domain.ErrEventNotInInterface)
	tm.cache.EXPECT().Set(gomock.Any(), "listener-1", uint64(1001)).Return(nil)

	require.NoError(t, tm.poller.Tick(context.Background(), tm.network))
}

func TestTick_QueryFailure(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{})
	tm.expectOneListener(1000)

	tm.cache.EXPECT().Get(gomock.Any(), "listener-1").Return(uint64(999), true, nil)
	tm.filter.EXPECT().Query(gomock.Any(), uint64(999), uint64(1000)).Return(nil, errors.New("rpc down"))

	err := tm.poller.Tick(context.Background(), tm.network)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listener listener-1")
}

func TestTick_PagesContracts(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{ChunkSize: 100})

	tm.network.EXPECT().BlockNumber(gomock.Any()).Return(uint64(1000), nil)
	tm.store.EXPECT().CountScannableContracts(gomock.Any(), domain.NetworkEthereum).Return(int64(250), nil)
	for _, offset := range []int{0, 100, 200} {
		tm.store.EXPECT().
			ListScannableContracts(gomock.Any(), domain.NetworkEthereum, 100, offset).
			Return(nil, nil)
	}

	require.NoError(t, tm.poller.Tick(context.Background(), tm.network))
}

func TestTick_SkipsContractsWithoutListenersAndBadABIs(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{})

	broken := testContract()
	broken.ID = "contract-2"
	idle := testContract()
	idle.ID = "contract-3"

	tm.network.EXPECT().BlockNumber(gomock.Any()).Return(uint64(1000), nil)
	tm.store.EXPECT().CountScannableContracts(gomock.Any(), domain.NetworkEthereum).Return(int64(2), nil)
	tm.store.EXPECT().
		ListScannableContracts(gomock.Any(), domain.NetworkEthereum, 100, 0).
		Return([]schema.Contract{broken, idle}, nil)
	tm.store.EXPECT().
		ListPromptlyListeners(gomock.Any(), []string{"contract-2", "contract-3"}).
		Return([]schema.EventListener{{ID: "listener-2", ContractID: "contract-2", Name: "Transfer"}}, nil)
	tm.network.EXPECT().Bind(testContractAddress, []byte(testABI)).Return(nil, domain.ErrInvalidInput)

	require.NoError(t, tm.poller.Tick(context.Background(), tm.network))
}

func TestTick_HeadFailure(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{})
	tm.network.EXPECT().BlockNumber(gomock.Any()).Return(uint64(0), errors.New("rpc down"))

	assert.Error(t, tm.poller.Tick(context.Background(), tm.network))
}

func TestRun_StopsWithContext(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{Interval: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.registry.EXPECT().IDs().Return([]domain.NetworkID{domain.NetworkEthereum})
	tm.registry.EXPECT().Network(gomock.Any(), domain.NetworkEthereum).Return(tm.network, nil)
	tm.clock.EXPECT().Now().Return(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()

	// the first tick overruns, the second sleeps the remainder of the interval
	gomock.InOrder(
		tm.clock.EXPECT().Since(gomock.Any()).Return(2*time.Second),
		tm.clock.EXPECT().Since(gomock.Any()).Return(300*time.Millisecond),
	)
	var never <-chan time.Time = make(chan time.Time)
	tm.clock.EXPECT().After(700 * time.Millisecond).DoAndReturn(func(time.Duration) <-chan time.Time {
		cancel()
		return never
	})

	tm.network.EXPECT().BlockNumber(gomock.Any()).Return(uint64(1000), nil).Times(2)
	tm.store.EXPECT().CountScannableContracts(gomock.Any(), domain.NetworkEthereum).Return(int64(0), nil).Times(2)

	require.NoError(t, tm.poller.Run(ctx))
}

func TestRun_FixedRateDriftCorrection(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{Interval: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.registry.EXPECT().IDs().Return([]domain.NetworkID{domain.NetworkEthereum})
	tm.registry.EXPECT().Network(gomock.Any(), domain.NetworkEthereum).Return(tm.network, nil)
	tm.clock.EXPECT().Now().Return(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()

	var events []string
	tm.network.EXPECT().BlockNumber(gomock.Any()).DoAndReturn(func(context.Context) (uint64, error) {
		events = append(events, "tick")
		return 1000, nil
	}).Times(4)
	tm.store.EXPECT().CountScannableContracts(gomock.Any(), domain.NetworkEthereum).Return(int64(0), nil).Times(4)

	gomock.InOrder(
		tm.clock.EXPECT().Since(gomock.Any()).Return(2500*time.Millisecond), // overrun
		tm.clock.EXPECT().Since(gomock.Any()).Return(300*time.Millisecond),  // underrun
		tm.clock.EXPECT().Since(gomock.Any()).Return(time.Second),           // exactly one interval
		tm.clock.EXPECT().Since(gomock.Any()).Return(400*time.Millisecond),  // underrun, then stop
	)
	tm.clock.EXPECT().After(gomock.Any()).DoAndReturn(func(d time.Duration) <-chan time.Time {
		events = append(events, "sleep "+d.String())
		fired := make(chan time.Time, 1)
		if d == 600*time.Millisecond {
			cancel()
			return make(chan time.Time)
		}
		fired <- time.Time{}
		return fired
	}).Times(2)

	require.NoError(t, tm.poller.Run(ctx))
	assert.Equal(t, []string{"tick", "tick", "sleep 700ms", "tick", "tick", "sleep 600ms"}, events)
}

func TestRun_UnknownNetwork(t *testing.T) {
	tm := setupTestPoller(t, poller.Config{})

	tm.registry.EXPECT().IDs().Return([]domain.NetworkID{domain.NetworkBSC})
	tm.registry.EXPECT().Network(gomock.Any(), domain.NetworkBSC).Return(nil, domain.ErrUnknownNetwork)

	err := tm.poller.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
}

func ptr(v uint64) *uint64 {
	return &v
}
