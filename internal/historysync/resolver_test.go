package historysync_test

import (
	"context"
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
	"github.com/feral-file/ff-event-scanner/internal/historysync"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/mocks"
	"github.com/feral-file/ff-event-scanner/internal/queue"
	"github.com/feral-file/ff-event-scanner/internal/store"
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

type testResolverMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	registry *mocks.MockNetworkRegistry
	network  *mocks.MockNetwork
	contract *mocks.MockBoundContract
	filter   *mocks.MockEventFilter
	clock    *mocks.MockClock
	resolver *historysync.Resolver
	now      time.Time
}

func setupResolver(t *testing.T) *testResolverMocks {
	ctrl := gomock.NewController(t)

	tm := &testResolverMocks{
		ctrl:     ctrl,
		store:    mocks.NewMockStore(ctrl),
		registry: mocks.NewMockNetworkRegistry(ctrl),
		network:  mocks.NewMockNetwork(ctrl),
		contract: mocks.NewMockBoundContract(ctrl),
		filter:   mocks.NewMockEventFilter(ctrl),
		clock:    mocks.NewMockClock(ctrl),
		now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	tm.clock.EXPECT().Now().Return(tm.now).AnyTimes()

	tm.resolver = historysync.NewResolver(
		historysync.ResolverConfig{DeferDelay: time.Minute, PageSize: 2},
		tm.store,
		tm.registry,
		tm.clock,
		adapter.NewJSON(),
	)
	return tm
}

func resolverTask(historySyncID string) *schema.Task {
	return &schema.Task{
		ID:      "task-1",
		Handler: domain.TaskHandlerHistorySyncResolver,
		Params:  datatypes.JSON(`{"id":"` + historySyncID + `"}`),
		Status:  domain.TaskStatusProcessing,
	}
}

// expectTarget wires a history sync row, its listener, its contract and the bound network
func (tm *testResolverMocks) expectTarget(sync *schema.HistorySync, head uint64) {
	listener := &schema.EventListener{ID: "listener-1", ContractID: "contract-1", Name: "Transfer"}
	contract := &schema.Contract{
		ID:      "contract-1",
		Network: domain.NetworkEthereum,
		Address: testContractAddress,
		ABI:     datatypes.JSON(testABI),
		Enabled: true,
	}

	tm.store.EXPECT().GetHistorySyncByID(gomock.Any(), sync.ID).Return(sync, nil)
	tm.store.EXPECT().GetEventListenerByID(gomock.Any(), "listener-1").Return(listener, nil)
	tm.store.EXPECT().GetContractByID(gomock.Any(), "contract-1").Return(contract, nil)
	tm.registry.EXPECT().Network(gomock.Any(), domain.NetworkEthereum).Return(tm.network, nil)
	tm.network.EXPECT().Bind(testContractAddress, []byte(testABI)).Return(tm.contract, nil)
	tm.contract.EXPECT().Filter("Transfer").Return(tm.filter, nil)
	tm.network.EXPECT().BlockNumber(gomock.Any()).Return(head, nil)
	tm.network.EXPECT().ChunkSize().Return(uint64(50)).AnyTimes()
}

func testLog(block uint64, tx string) types.Log {
	return types.Log{BlockNumber: block, TxHash: common.HexToHash(tx)}
}

func TestResolver_AdvancesOneChunk(t *testing.T) {
	tm := setupResolver(t)
	defer tm.ctrl.Finish()

	sync := &schema.HistorySync{ID: "hs-1", EventListenerID: "listener-1", SyncHeight: 1000}
	tm.expectTarget(sync, 1200)

	logs := []types.Log{testLog(1001, "0x01"), testLog(1020, "0x02"), testLog(1050, "0x03")}
	tm.filter.EXPECT().Query(gomock.Any(), uint64(1000), uint64(1050)).Return(logs, nil)

	sender := common.HexToAddress("0x00000000000000000000000000000000000000BB")
	for _, l := range logs {
		receipt := &types.Receipt{TxHash: l.TxHash}
		tm.network.EXPECT().TransactionReceipt(gomock.Any(), l.TxHash).Return(receipt, nil)
		tm.network.EXPECT().TransactionSender(gomock.Any(), receipt).Return(sender, nil)
	}
	tm.store.EXPECT().CreateWalletInteraction(gomock.Any(), &schema.WalletInteraction{
		Wallet:    "0x00000000000000000000000000000000000000bb",
		Contract:  testContractAddress,
		Network:   domain.NetworkEthereum,
		EventName: "Transfer",
	}).Return(true, nil).Times(3)

	height := uint64(1050)
	tm.store.EXPECT().UpdateHistorySync(gomock.Any(), "hs-1", store.HistorySyncUpdate{SyncHeight: &height}).Return(nil)

	out, err := tm.resolver.Handle(context.Background(), queue.NewOutcome(resolverTask("hs-1")))

	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, out.Status())
	assert.Contains(t, out.Info(), "synced 1000-1050: 3 events")
}

func TestResolver_SkipsLogsWithoutReceiptOrSender(t *testing.T) {
	tm := setupResolver(t)
	defer tm.ctrl.Finish()

	sync := &schema.HistorySync{ID: "hs-1", EventListenerID: "listener-1", SyncHeight: 1000, SaveEvents: true}
	tm.expectTarget(sync, 1010)

	logs := []types.Log{testLog(1001, "0x01"), testLog(1002, "0x02"), testLog(1003, "0x03")}
	tm.filter.EXPECT().Query(gomock.Any(), uint64(1000), uint64(1010)).Return(logs, nil)

	for _, l := range logs {
		tm.store.EXPECT().CreateEvent(gomock.Any(), &schema.Event{
			BlockNumber:     l.BlockNumber,
			TransactionHash: l.TxHash.Hex(),
			Event:           "Transfer",
		}).Return(true, nil)
	}

	missing := logs[0].TxHash
	failing := &types.Receipt{TxHash: logs[1].TxHash}
	good := &types.Receipt{TxHash: logs[2].TxHash}
	tm.network.EXPECT().TransactionReceipt(gomock.Any(), missing).Return(nil, nil)
	tm.network.EXPECT().TransactionReceipt(gomock.Any(), logs[1].TxHash).Return(failing, nil)
	tm.network.EXPECT().TransactionSender(gomock.Any(), failing).Return(common.Address{}, errors.New("unknown tx"))
	tm.network.EXPECT().TransactionReceipt(gomock.Any(), logs[2].TxHash).Return(good, nil)
	tm.network.EXPECT().TransactionSender(gomock.Any(), good).Return(common.HexToAddress("0x01"), nil)
	tm.store.EXPECT().CreateWalletInteraction(gomock.Any(), gomock.Any()).Return(true, nil)

	height := uint64(1010)
	tm.store.EXPECT().UpdateHistorySync(gomock.Any(), "hs-1", store.HistorySyncUpdate{SyncHeight: &height}).Return(nil)

	out, err := tm.resolver.Handle(context.Background(), queue.NewOutcome(resolverTask("hs-1")))

	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, out.Status())
}

func TestResolver_StoreFailureKeepsCursor(t *testing.T) {
	tm := setupResolver(t)
	defer tm.ctrl.Finish()

	sync := &schema.HistorySync{ID: "hs-1", EventListenerID: "listener-1", SyncHeight: 1000}
	tm.expectTarget(sync, 1010)

	log := testLog(1001, "0x01")
	receipt := &types.Receipt{TxHash: log.TxHash}
	tm.filter.EXPECT().Query(gomock.Any(), uint64(1000), uint64(1010)).Return([]types.Log{log}, nil)
	tm.network.EXPECT().TransactionReceipt(gomock.Any(), log.TxHash).Return(receipt, nil)
	tm.network.EXPECT().TransactionSender(gomock.Any(), receipt).Return(common.HexToAddress("0x01"), nil)
	tm.store.EXPECT().CreateWalletInteraction(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

	_, err := tm.resolver.Handle(context.Background(), queue.NewOutcome(resolverTask("hs-1")))

	assert.EqualError(t, err, "db down")
}

func TestResolver_CaughtUp(t *testing.T) {
	end := uint64(1200)

	tests := []struct {
		name       string
		sync       *schema.HistorySync
		wantStatus domain.TaskStatus
	}{
		{
			name:       "perpetual defers",
			sync:       &schema.HistorySync{ID: "hs-1", EventListenerID: "listener-1", SyncHeight: 1200},
			wantStatus: domain.TaskStatusPending,
		},
		{
			name:       "bounded finishes",
			sync:       &schema.HistorySync{ID: "hs-1", EventListenerID: "listener-1", SyncHeight: 1200, EndHeight: &end},
			wantStatus: domain.TaskStatusDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupResolver(t)
			defer tm.ctrl.Finish()

			tm.expectTarget(tt.sync, 1200)

			out, err := tm.resolver.Handle(context.Background(), queue.NewOutcome(resolverTask("hs-1")))

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, out.Status())
			if tt.wantStatus == domain.TaskStatusPending {
				assert.Equal(t, tm.now.Add(time.Minute), out.StartAt())
			}
		})
	}
}

func TestResolver_InvalidTargets(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(tm *testResolverMocks)
		wantErr error
	}{
		{
			name: "missing history sync",
			setup: func(tm *testResolverMocks) {
				tm.store.EXPECT().GetHistorySyncByID(gomock.Any(), "hs-1").Return(nil, nil)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "missing listener",
			setup: func(tm *testResolverMocks) {
				tm.store.EXPECT().GetHistorySyncByID(gomock.Any(), "hs-1").
					Return(&schema.HistorySync{ID: "hs-1", EventListenerID: "listener-1"}, nil)
				tm.store.EXPECT().GetEventListenerByID(gomock.Any(), "listener-1").Return(nil, nil)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "disabled contract",
			setup: func(tm *testResolverMocks) {
				tm.store.EXPECT().GetHistorySyncByID(gomock.Any(), "hs-1").
					Return(&schema.HistorySync{ID: "hs-1", EventListenerID: "listener-1"}, nil)
				tm.store.EXPECT().GetEventListenerByID(gomock.Any(), "listener-1").
					Return(&schema.EventListener{ID: "listener-1", ContractID: "contract-1", Name: "Transfer"}, nil)
				tm.store.EXPECT().GetContractByID(gomock.Any(), "contract-1").
					Return(&schema.Contract{ID: "contract-1", ABI: datatypes.JSON(testABI), Enabled: false}, nil)
			},
			wantErr: domain.ErrContractDisabled,
		},
		{
			name: "unknown network",
			setup: func(tm *testResolverMocks) {
				tm.store.EXPECT().GetHistorySyncByID(gomock.Any(), "hs-1").
					Return(&schema.HistorySync{ID: "hs-1", EventListenerID: "listener-1"}, nil)
				tm.store.EXPECT().GetEventListenerByID(gomock.Any(), "listener-1").
					Return(&schema.EventListener{ID: "listener-1", ContractID: "contract-1", Name: "Transfer"}, nil)
				tm.store.EXPECT().GetContractByID(gomock.Any(), "contract-1").
					Return(&schema.Contract{ID: "contract-1", Network: 5, ABI: datatypes.JSON(testABI), Enabled: true}, nil)
				tm.registry.EXPECT().Network(gomock.Any(), domain.NetworkID(5)).Return(nil, domain.ErrUnknownNetwork)
			},
			wantErr: domain.ErrUnknownNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupResolver(t)
			defer tm.ctrl.Finish()

			tt.setup(tm)

			_, err := tm.resolver.Handle(context.Background(), queue.NewOutcome(resolverTask("hs-1")))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolver_EventNotInInterface(t *testing.T) {
	tm := setupResolver(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().GetHistorySyncByID(gomock.Any(), "hs-1").
		Return(&schema.HistorySync{ID: "hs-1", EventListenerID: "listener-1"}, nil)
	tm.store.EXPECT().GetEventListenerByID(gomock.Any(), "listener-1").
		Return(&schema.EventListener{ID: "listener-1", ContractID: "contract-1", Name: "Approval"}, nil)
	tm.store.EXPECT().GetContractByID(gomock.Any(), "contract-1").
		Return(&schema.Contract{ID: "contract-1", Network: domain.NetworkEthereum, Address: testContractAddress, ABI: datatypes.JSON(testABI), Enabled: true}, nil)
	tm.registry.EXPECT().Network(gomock.Any(), domain.NetworkEthereum).Return(tm.network, nil)
	tm.network.EXPECT().Bind(testContractAddress, []byte(testABI)).Return(tm.contract, nil)
	tm.contract.EXPECT().Filter("Approval").Return(nil, domain.ErrEventNotInInterface)

	_, err := tm.resolver.Handle(context.Background(), queue.NewOutcome(resolverTask("hs-1")))
	assert.ErrorIs(t, err, domain.ErrEventNotInInterface)
}

func TestResolver_MalformedParams(t *testing.T) {
	tm := setupResolver(t)
	defer tm.ctrl.Finish()

	task := resolverTask("hs-1")
	task.Params = datatypes.JSON(`[`)

	_, err := tm.resolver.Handle(context.Background(), queue.NewOutcome(task))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
