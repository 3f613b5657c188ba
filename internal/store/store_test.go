package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

const testABI = `[{"anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"value","type":"uint256"}],"name":"Transfer","type":"event"}]`

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestContract(network domain.NetworkID, address string) *schema.Contract {
	return &schema.Contract{
		Network:     network,
		Address:     address,
		Name:        "Test Token",
		ABI:         datatypes.JSON(testABI),
		StartHeight: 1000,
		Enabled:     true,
	}
}

func buildTestTask(handler domain.TaskHandler, status domain.TaskStatus, startAt time.Time, priority int) *schema.Task {
	return &schema.Task{
		Handler:  handler,
		Params:   datatypes.JSON(`{}`),
		StartAt:  startAt,
		Status:   status,
		Priority: priority,
		Topic:    domain.DefaultTaskTopic,
	}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func stringPtr(s string) *string {
	return &s
}

// createListenerFixture creates a contract with one listener and returns both
func createListenerFixture(t *testing.T, store Store, network domain.NetworkID, address string) (*schema.Contract, *schema.EventListener) {
	t.Helper()
	ctx := context.Background()

	contract, created, err := store.CreateContract(ctx, buildTestContract(network, address))
	require.NoError(t, err)
	require.True(t, created)

	listener, created, err := store.CreateEventListener(ctx, &schema.EventListener{
		ContractID: contract.ID,
		Name:       "Transfer",
	})
	require.NoError(t, err)
	require.True(t, created)

	return contract, listener
}

// =============================================================================
// Test: Tasks
// =============================================================================

func testTaskLifecycle(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create assigns id and defaults params", func(t *testing.T) {
		task := buildTestTask(domain.TaskHandlerHistorySyncBroker, domain.TaskStatusPending, time.Now(), 4)
		task.Params = nil

		require.NoError(t, store.CreateTask(ctx, task))
		assert.NotEmpty(t, task.ID)

		stored, err := store.GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, domain.TaskHandlerHistorySyncBroker, stored.Handler)
		assert.JSONEq(t, `{}`, string(stored.Params))
		assert.Equal(t, domain.TaskStatusPending, stored.Status)
	})

	t.Run("missing task returns nil", func(t *testing.T) {
		stored, err := store.GetTaskByID(ctx, "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("claim succeeds once", func(t *testing.T) {
		task := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusPending, time.Now(), 4)
		require.NoError(t, store.CreateTask(ctx, task))

		ok, err := store.ClaimTask(ctx, task.ID, "first")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.ClaimTask(ctx, task.ID, "second")
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := store.GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusProcessing, stored.Status)
		assert.Equal(t, "first", stored.DispatchToken)
	})

	t.Run("dispatch token is spent once", func(t *testing.T) {
		task := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusProcessing, time.Now(), 4)
		task.DispatchToken = "tok"
		require.NoError(t, store.CreateTask(ctx, task))

		ok, err := store.AcquireTask(ctx, task.ID, "other")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.AcquireTask(ctx, task.ID, "tok")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.AcquireTask(ctx, task.ID, "tok")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.AcquireTask(ctx, task.ID, "")
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := store.GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.DispatchToken)
	})

	t.Run("pending task cannot be acquired", func(t *testing.T) {
		task := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusPending, time.Now(), 4)
		task.DispatchToken = "tok"
		require.NoError(t, store.CreateTask(ctx, task))

		ok, err := store.AcquireTask(ctx, task.ID, "tok")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("save outcome persists status info and start", func(t *testing.T) {
		task := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusProcessing, time.Now(), 4)
		require.NoError(t, store.CreateTask(ctx, task))

		later := time.Now().Add(time.Minute).UTC().Truncate(time.Microsecond)
		task.Status = domain.TaskStatusPending
		task.Info = "synced 1000-1050: 3 events"
		task.StartAt = later
		require.NoError(t, store.SaveTaskOutcome(ctx, task))

		stored, err := store.GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, stored.Status)
		assert.Equal(t, "synced 1000-1050: 3 events", stored.Info)
		assert.True(t, later.Equal(stored.StartAt))
	})

	t.Run("reset clears error and counts retries", func(t *testing.T) {
		task := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusError, time.Now().Add(-time.Hour), 4)
		task.Error = "boom"
		require.NoError(t, store.CreateTask(ctx, task))

		now := time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, store.ResetTask(ctx, task.ID, now))

		stored, err := store.GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, stored.Status)
		assert.Empty(t, stored.Error)
		assert.Equal(t, 1, stored.Retries)
		assert.True(t, now.Equal(stored.StartAt))
	})

	t.Run("set status", func(t *testing.T) {
		task := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusProcessing, time.Now(), 4)
		require.NoError(t, store.CreateTask(ctx, task))

		require.NoError(t, store.SetTaskStatus(ctx, task.ID, domain.TaskStatusPending))

		stored, err := store.GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, stored.Status)
	})
}

func testCandidateTasks(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now()

	older := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusPending, now.Add(-10*time.Minute), 1)
	lowPriority := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusPending, now.Add(-5*time.Minute), 2)
	highPriority := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusPending, now.Add(-5*time.Minute), 9)
	future := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusPending, now.Add(time.Hour), 9)
	processing := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusProcessing, now.Add(-time.Hour), 9)
	for _, task := range []*schema.Task{lowPriority, future, older, processing, highPriority} {
		require.NoError(t, store.CreateTask(ctx, task))
	}

	candidates, err := store.GetCandidateTasks(ctx, now, 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{older.ID, highPriority.ID, lowPriority.ID}, ids)

	limited, err := store.GetCandidateTasks(ctx, now, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, older.ID, limited[0].ID)
}

func testStaleTasks(t *testing.T, store Store) {
	ctx := context.Background()

	stale := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusProcessing, time.Now(), 4)
	stale.DispatchToken = "backlogged"
	require.NoError(t, store.CreateTask(ctx, stale))
	done := buildTestTask(domain.TaskHandlerHistorySyncResolver, domain.TaskStatusDone, time.Now(), 4)
	require.NoError(t, store.CreateTask(ctx, done))

	// Nothing is older than an hour ago
	count, err := store.ResetStaleTasks(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// A heartbeat keeps the lease, a cutoff in the future expires it
	require.NoError(t, store.TouchTask(ctx, stale.ID))
	count, err = store.ResetStaleTasks(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := store.GetTaskByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, stored.Status)
	assert.Equal(t, 1, stored.Retries)
	assert.Empty(t, stored.DispatchToken)

	// The backlogged message of the reset task can no longer run it
	ok, err := store.AcquireTask(ctx, stale.ID, "backlogged")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err = store.GetTaskByID(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, stored.Status)
}

// =============================================================================
// Test: Contracts
// =============================================================================

func testContracts(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create is idempotent on network and address", func(t *testing.T) {
		first, created, err := store.CreateContract(ctx, buildTestContract(domain.NetworkEthereum, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", first.Address)

		second, created, err := store.CreateContract(ctx, buildTestContract(domain.NetworkEthereum, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)

		other, created, err := store.CreateContract(ctx, buildTestContract(domain.NetworkPolygon, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, first.ID, other.ID)
	})

	t.Run("list and count with filters", func(t *testing.T) {
		network := domain.NetworkAvalanche
		c1 := buildTestContract(network, "0x1111111111111111111111111111111111111111")
		c1.Name = "Alpha Collection"
		c2 := buildTestContract(network, "0x2222222222222222222222222222222222222222")
		c2.Name = "Beta Drops"
		for _, c := range []*schema.Contract{c1, c2} {
			_, _, err := store.CreateContract(ctx, c)
			require.NoError(t, err)
		}

		all, err := store.ListContracts(ctx, ContractFilter{Network: &network})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		byName, err := store.ListContracts(ctx, ContractFilter{Network: &network, Name: "alpha"})
		require.NoError(t, err)
		require.Len(t, byName, 1)
		assert.Equal(t, c1.ID, byName[0].ID)

		byAddress, err := store.ListContracts(ctx, ContractFilter{Address: "0x2222222222222222222222222222222222222222"})
		require.NoError(t, err)
		require.Len(t, byAddress, 1)
		assert.Equal(t, c2.ID, byAddress[0].ID)

		paged, err := store.ListContracts(ctx, ContractFilter{Network: &network, Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.Equal(t, c2.ID, paged[0].ID)

		count, err := store.CountContracts(ctx, ContractFilter{Network: &network, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("update and delete", func(t *testing.T) {
		contract, _, err := store.CreateContract(ctx, buildTestContract(domain.NetworkBSC, "0x3333333333333333333333333333333333333333"))
		require.NoError(t, err)

		disabled := false
		updated, err := store.UpdateContract(ctx, contract.ID, ContractUpdate{
			Name:        stringPtr("Renamed"),
			StartHeight: uint64Ptr(42),
			Enabled:     &disabled,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, uint64(42), updated.StartHeight)
		assert.False(t, updated.Enabled)
		assert.JSONEq(t, testABI, string(updated.ABI))

		missing, err := store.UpdateContract(ctx, "00000000-0000-0000-0000-000000000000", ContractUpdate{Name: stringPtr("x")})
		require.NoError(t, err)
		assert.Nil(t, missing)

		deleted, err := store.DeleteContract(ctx, contract.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.DeleteContract(ctx, contract.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		gone, err := store.GetContractByID(ctx, contract.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func testScannableContracts(t *testing.T, store Store) {
	ctx := context.Background()
	network := domain.NetworkMoonriver

	withPromptly, listener := createListenerFixture(t, store, network, "0x4444444444444444444444444444444444444444")
	_, err := store.CreatePromptlySync(ctx, listener.ID)
	require.NoError(t, err)

	// Listener without promptly sync
	createListenerFixture(t, store, network, "0x5555555555555555555555555555555555555555")

	// No ABI
	noABI := buildTestContract(network, "0x6666666666666666666666666666666666666666")
	noABI.ABI = nil
	_, _, err = store.CreateContract(ctx, noABI)
	require.NoError(t, err)

	contracts, err := store.ListScannableContracts(ctx, network, 10, 0)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, withPromptly.ID, contracts[0].ID)

	count, err := store.CountScannableContracts(ctx, network)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	listeners, err := store.ListPromptlyListeners(ctx, []string{withPromptly.ID})
	require.NoError(t, err)
	require.Len(t, listeners, 1)
	assert.Equal(t, listener.ID, listeners[0].ID)

	none, err := store.ListPromptlyListeners(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

// =============================================================================
// Test: Event listeners and syncs
// =============================================================================

func testEventListeners(t *testing.T, store Store) {
	ctx := context.Background()
	contract, listener := createListenerFixture(t, store, domain.NetworkEthereum, "0x7777777777777777777777777777777777777777")

	t.Run("create is idempotent on contract and name", func(t *testing.T) {
		again, created, err := store.CreateEventListener(ctx, &schema.EventListener{ContractID: contract.ID, Name: "Transfer"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, listener.ID, again.ID)
	})

	t.Run("list joins the perpetual sync", func(t *testing.T) {
		require.NoError(t, store.CreateHistorySync(ctx, &schema.HistorySync{
			EventListenerID: listener.ID,
			SyncHeight:      500,
			EndHeight:       uint64Ptr(900),
		}))
		require.NoError(t, store.CreateHistorySync(ctx, &schema.HistorySync{
			EventListenerID: listener.ID,
			SyncHeight:      1200,
		}))
		_, err := store.CreatePromptlySync(ctx, listener.ID)
		require.NoError(t, err)

		listeners, err := store.ListEventListeners(ctx, contract.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, listeners, 1)
		assert.Equal(t, listener.ID, listeners[0].ID)
		require.NotNil(t, listeners[0].SyncHeight)
		assert.Equal(t, uint64(1200), *listeners[0].SyncHeight)
		assert.Nil(t, listeners[0].EndHeight)
		assert.True(t, listeners[0].Promptly)

		count, err := store.CountEventListeners(ctx, contract.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("update and delete", func(t *testing.T) {
		extra, _, err := store.CreateEventListener(ctx, &schema.EventListener{ContractID: contract.ID, Name: "Approval"})
		require.NoError(t, err)

		renamed, err := store.UpdateEventListener(ctx, extra.ID, "ApprovalForAll")
		require.NoError(t, err)
		assert.Equal(t, "ApprovalForAll", renamed.Name)

		deleted, err := store.DeleteEventListener(ctx, extra.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		gone, err := store.GetEventListenerByID(ctx, extra.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func testHistorySyncs(t *testing.T, store Store) {
	ctx := context.Background()
	contract, listener := createListenerFixture(t, store, domain.NetworkPolygon, "0x8888888888888888888888888888888888888888")

	perpetual := &schema.HistorySync{EventListenerID: listener.ID, SyncHeight: 1000}
	finished := &schema.HistorySync{EventListenerID: listener.ID, SyncHeight: 900, EndHeight: uint64Ptr(900)}
	backfill := &schema.HistorySync{EventListenerID: listener.ID, SyncHeight: 100, EndHeight: uint64Ptr(900), SaveEvents: true}
	for _, h := range []*schema.HistorySync{perpetual, finished, backfill} {
		require.NoError(t, store.CreateHistorySync(ctx, h))
	}

	t.Run("unfinished excludes rows at their end", func(t *testing.T) {
		syncs, err := store.GetUnfinishedHistorySyncs(ctx)
		require.NoError(t, err)

		ids := map[string]bool{}
		for _, h := range syncs {
			ids[h.ID] = true
		}
		assert.True(t, ids[perpetual.ID])
		assert.True(t, ids[backfill.ID])
		assert.False(t, ids[finished.ID])
	})

	t.Run("update cursor and task", func(t *testing.T) {
		taskID := "11111111-1111-1111-1111-111111111111"
		require.NoError(t, store.UpdateHistorySync(ctx, perpetual.ID, HistorySyncUpdate{
			SyncHeight: uint64Ptr(1050),
			TaskID:     &taskID,
		}))

		stored, err := store.GetHistorySyncByID(ctx, perpetual.ID)
		require.NoError(t, err)
		assert.Equal(t, uint64(1050), stored.SyncHeight)
		require.NotNil(t, stored.TaskID)
		assert.Equal(t, taskID, *stored.TaskID)

		syncs, err := store.ListHistorySyncs(ctx, listener.ID)
		require.NoError(t, err)
		assert.Len(t, syncs, 3)
	})

	t.Run("disabled contracts are excluded", func(t *testing.T) {
		disabled := false
		_, err := store.UpdateContract(ctx, contract.ID, ContractUpdate{Enabled: &disabled})
		require.NoError(t, err)

		syncs, err := store.GetUnfinishedHistorySyncs(ctx)
		require.NoError(t, err)
		for _, h := range syncs {
			assert.NotEqual(t, listener.ID, h.EventListenerID)
		}
	})
}

func testPromptlySyncs(t *testing.T, store Store) {
	ctx := context.Background()
	_, listener := createListenerFixture(t, store, domain.NetworkBSC, "0x9999999999999999999999999999999999999999")

	first, err := store.CreatePromptlySync(ctx, listener.ID)
	require.NoError(t, err)
	second, err := store.CreatePromptlySync(ctx, listener.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	deleted, err := store.DeletePromptlySync(ctx, listener.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	missing, err := store.GetPromptlySync(ctx, listener.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// =============================================================================
// Test: Interactions and reports
// =============================================================================

func testInteractions(t *testing.T, store Store) {
	ctx := context.Background()
	contract := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"

	interaction := func(wallet string) *schema.WalletInteraction {
		return &schema.WalletInteraction{
			Wallet:    wallet,
			Contract:  contract,
			Network:   domain.NetworkEthereum,
			EventName: "Transfer",
		}
	}

	created, err := store.CreateWalletInteraction(ctx, interaction("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))
	require.NoError(t, err)
	assert.True(t, created)

	// Same wallet in different case is the same interaction
	created, err = store.CreateWalletInteraction(ctx, interaction("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	require.NoError(t, err)
	assert.False(t, created)

	created, err = store.CreateWalletInteraction(ctx, interaction("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"))
	require.NoError(t, err)
	assert.True(t, created)

	count, err := store.CountUniqueWallets(ctx, domain.NetworkEthereum, contract)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = store.CountUniqueWallets(ctx, domain.NetworkPolygon, contract)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	list, err := store.ListWalletInteractions(ctx, []string{"0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"}, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", list[0].Wallet)
	assert.Equal(t, contract, list[0].Contract)

	list, err = store.ListWalletInteractions(ctx, []string{
		"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	}, nil)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	polygon := domain.NetworkPolygon
	list, err = store.ListWalletInteractions(ctx, []string{"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}, &polygon)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = store.ListWalletInteractions(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	event := &schema.Event{BlockNumber: 1010, TransactionHash: "0xdeadbeef", Event: "Transfer"}
	created, err = store.CreateEvent(ctx, event)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.CreateEvent(ctx, &schema.Event{BlockNumber: 1010, TransactionHash: "0xdeadbeef", Event: "Transfer"})
	require.NoError(t, err)
	assert.False(t, created)
}

func testReports(t *testing.T, store Store) {
	ctx := context.Background()
	network := domain.NetworkAvalanche

	_, l1 := createListenerFixture(t, store, network, "0xcccccccccccccccccccccccccccccccccccccccc")
	_, l2 := createListenerFixture(t, store, network, "0xdddddddddddddddddddddddddddddddddddddddd")
	require.NoError(t, store.CreateHistorySync(ctx, &schema.HistorySync{EventListenerID: l1.ID, SyncHeight: 3000}))
	require.NoError(t, store.CreateHistorySync(ctx, &schema.HistorySync{EventListenerID: l2.ID, SyncHeight: 2000}))
	// Bounded rows are not part of progress reports
	require.NoError(t, store.CreateHistorySync(ctx, &schema.HistorySync{EventListenerID: l2.ID, SyncHeight: 10, EndHeight: uint64Ptr(20)}))

	summaries, err := store.GetNetworkSyncSummary(ctx)
	require.NoError(t, err)

	var summary *NetworkSyncSummary
	for i := range summaries {
		if summaries[i].Network == network {
			summary = &summaries[i]
		}
	}
	require.NotNil(t, summary)
	assert.Equal(t, int64(2), summary.ContractsCount)
	assert.Equal(t, int64(2), summary.ListenersCount)
	require.NotNil(t, summary.MaxSyncHeight)
	require.NotNil(t, summary.MinSyncHeight)
	assert.Equal(t, uint64(3000), *summary.MaxSyncHeight)
	assert.Equal(t, uint64(2000), *summary.MinSyncHeight)

	progress, err := store.ListListenerSyncProgress(ctx, network, 10, 0)
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, l2.ID, progress[0].ListenerID)
	assert.Equal(t, uint64(2000), progress[0].SyncHeight)
	assert.Equal(t, uint64(1000), progress[0].StartHeight)
	assert.Equal(t, "0xdddddddddddddddddddddddddddddddddddddddd", progress[0].ContractAddress)

	count, err := store.CountListenerSyncProgress(ctx, network)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

// RunStoreTests runs every store test against the implementation returned by initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"TaskLifecycle", testTaskLifecycle},
		{"CandidateTasks", testCandidateTasks},
		{"StaleTasks", testStaleTasks},
		{"Contracts", testContracts},
		{"ScannableContracts", testScannableContracts},
		{"EventListeners", testEventListeners},
		{"HistorySyncs", testHistorySyncs},
		{"PromptlySyncs", testPromptlySyncs},
		{"Interactions", testInteractions},
		{"Reports", testReports},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
