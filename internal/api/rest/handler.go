package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-event-scanner/internal/api/shared/dto"
	"github.com/feral-file/ff-event-scanner/internal/api/shared/executor"
	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListContracts lists contracts, or counts them with count=yes
	// GET /api/v1/contracts?network=<id>&address=<address>&name=<substring>&limit=<limit>&offset=<offset>&count=yes
	ListContracts(c *gin.Context)

	// CreateContract registers a contract; an existing network and address returns the stored row
	// POST /api/v1/contracts
	CreateContract(c *gin.Context)

	// GetContract retrieves a contract
	// GET /api/v1/contracts/:id
	GetContract(c *gin.Context)

	// UpdateContract updates the name, abi, start height or enabled flag of a contract
	// PUT /api/v1/contracts/:id
	UpdateContract(c *gin.Context)

	// DeleteContract removes a contract with its listeners and syncs
	// DELETE /api/v1/contracts/:id
	DeleteContract(c *gin.Context)

	// GetContractStatistics returns the unique wallets seen on a contract
	// GET /api/v1/contracts/:id/statistics
	GetContractStatistics(c *gin.Context)

	// ListEventListeners lists listeners of a contract with their sync progress
	// GET /api/v1/contracts/:id/listeners?limit=<limit>&offset=<offset>&count=yes
	ListEventListeners(c *gin.Context)

	// CreateEventListener tracks an event declared in the contract ABI
	// POST /api/v1/contracts/:id/listeners
	CreateEventListener(c *gin.Context)

	// GetEventListener retrieves a listener of a contract
	// GET /api/v1/contracts/:id/listeners/:listener_id
	GetEventListener(c *gin.Context)

	// UpdateEventListener renames a listener
	// PUT /api/v1/contracts/:id/listeners/:listener_id
	UpdateEventListener(c *gin.Context)

	// DeleteEventListener removes a listener with its syncs
	// DELETE /api/v1/contracts/:id/listeners/:listener_id
	DeleteEventListener(c *gin.Context)

	// ListHistorySyncs lists the history syncs of a listener
	// GET /api/v1/listeners/:id/history-syncs
	ListHistorySyncs(c *gin.Context)

	// CreateHistorySync starts a bounded backfill
	// POST /api/v1/listeners/:id/history-syncs
	CreateHistorySync(c *gin.Context)

	// EnablePromptlySync turns live polling on
	// PUT /api/v1/listeners/:id/promptly-sync
	EnablePromptlySync(c *gin.Context)

	// DisablePromptlySync turns live polling off
	// DELETE /api/v1/listeners/:id/promptly-sync
	DisablePromptlySync(c *gin.Context)

	// GetSyncProgressReport summarizes sync progress per network
	// GET /api/v1/reports/sync-progress
	GetSyncProgressReport(c *gin.Context)

	// GetNetworkSyncProgress lists listener cursors of one network
	// GET /api/v1/reports/sync-progress/:network?limit=<limit>&offset=<offset>
	GetNetworkSyncProgress(c *gin.Context)

	// GetTask retrieves a task of the queue
	// GET /api/v1/tasks/:id
	GetTask(c *gin.Context)

	// GetAddressInteractions lists the contract events a wallet triggered
	// GET /api/v1/addresses/:address?network=<id>
	GetAddressInteractions(c *gin.Context)

	// GetBulkAddressInteractions groups contracts by wallet and network for up to 100 wallets
	// POST /api/v1/addresses/bulk
	GetBulkAddressInteractions(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

func (h *handler) ListContracts(c *gin.Context) {
	params, err := ParseListContractsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	filter, err := params.Filter()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if params.CountOnly() {
		count, err := h.executor.CountContracts(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err, "Failed to count contracts")
			return
		}
		c.JSON(http.StatusOK, count)
		return
	}

	contracts, err := h.executor.ListContracts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list contracts")
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *handler) CreateContract(c *gin.Context) {
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	contract, created, err := h.executor.CreateContract(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create contract")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, contract)
}

func (h *handler) GetContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	contract, err := h.executor.GetContract(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get contract")
		return
	}
	if contract == nil {
		respondNotFound(c, "Contract not found")
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *handler) UpdateContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	contract, err := h.executor.UpdateContract(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update contract")
		return
	}
	if contract == nil {
		respondNotFound(c, "Contract not found")
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *handler) DeleteContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.executor.DeleteContract(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to delete contract")
		return
	}
	if !deleted {
		respondNotFound(c, "Contract not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) GetContractStatistics(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	stats, err := h.executor.GetContractStatistics(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get contract statistics")
		return
	}
	if stats == nil {
		respondNotFound(c, "Contract not found")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handler) ListEventListeners(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	params, err := ParseListListenersQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if params.CountOnly() {
		count, err := h.executor.CountEventListeners(c.Request.Context(), contractID)
		if err != nil {
			respondError(c, err, "Failed to count event listeners")
			return
		}
		if count == nil {
			respondNotFound(c, "Contract not found")
			return
		}
		c.JSON(http.StatusOK, count)
		return
	}

	listeners, err := h.executor.ListEventListeners(c.Request.Context(), contractID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list event listeners")
		return
	}
	if listeners == nil {
		respondNotFound(c, "Contract not found")
		return
	}
	c.JSON(http.StatusOK, listeners)
}

func (h *handler) CreateEventListener(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.EventListenerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	listener, created, err := h.executor.CreateEventListener(c.Request.Context(), contractID, req)
	if err != nil {
		respondError(c, err, "Failed to create event listener")
		return
	}
	if listener == nil {
		respondNotFound(c, "Contract not found")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, listener)
}

func (h *handler) GetEventListener(c *gin.Context) {
	contractID, listenerID, ok := listenerPath(c)
	if !ok {
		return
	}

	listener, err := h.executor.GetEventListener(c.Request.Context(), contractID, listenerID)
	if err != nil {
		respondError(c, err, "Failed to get event listener")
		return
	}
	if listener == nil {
		respondNotFound(c, "Event listener not found")
		return
	}
	c.JSON(http.StatusOK, listener)
}

func (h *handler) UpdateEventListener(c *gin.Context) {
	contractID, listenerID, ok := listenerPath(c)
	if !ok {
		return
	}

	var req dto.EventListenerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	listener, err := h.executor.UpdateEventListener(c.Request.Context(), contractID, listenerID, req)
	if err != nil {
		respondError(c, err, "Failed to update event listener")
		return
	}
	if listener == nil {
		respondNotFound(c, "Event listener not found")
		return
	}
	c.JSON(http.StatusOK, listener)
}

func (h *handler) DeleteEventListener(c *gin.Context) {
	contractID, listenerID, ok := listenerPath(c)
	if !ok {
		return
	}

	deleted, err := h.executor.DeleteEventListener(c.Request.Context(), contractID, listenerID)
	if err != nil {
		respondError(c, err, "Failed to delete event listener")
		return
	}
	if !deleted {
		respondNotFound(c, "Event listener not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) ListHistorySyncs(c *gin.Context) {
	listenerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	syncs, err := h.executor.ListHistorySyncs(c.Request.Context(), listenerID)
	if err != nil {
		respondError(c, err, "Failed to list history syncs")
		return
	}
	if syncs == nil {
		respondNotFound(c, "Event listener not found")
		return
	}
	c.JSON(http.StatusOK, syncs)
}

func (h *handler) CreateHistorySync(c *gin.Context) {
	listenerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateHistorySyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	sync, err := h.executor.CreateHistorySync(c.Request.Context(), listenerID, req)
	if err != nil {
		respondError(c, err, "Failed to create history sync")
		return
	}
	if sync == nil {
		respondNotFound(c, "Event listener not found")
		return
	}
	c.JSON(http.StatusCreated, sync)
}

func (h *handler) EnablePromptlySync(c *gin.Context) {
	listenerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	sync, err := h.executor.EnablePromptlySync(c.Request.Context(), listenerID)
	if err != nil {
		respondError(c, err, "Failed to enable promptly sync")
		return
	}
	if sync == nil {
		respondNotFound(c, "Event listener not found")
		return
	}
	c.JSON(http.StatusOK, sync)
}

func (h *handler) DisablePromptlySync(c *gin.Context) {
	listenerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.executor.DisablePromptlySync(c.Request.Context(), listenerID)
	if err != nil {
		respondError(c, err, "Failed to disable promptly sync")
		return
	}
	if !deleted {
		respondNotFound(c, "Promptly sync not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) GetSyncProgressReport(c *gin.Context) {
	report, err := h.executor.GetSyncProgressReport(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get sync progress")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handler) GetNetworkSyncProgress(c *gin.Context) {
	network, err := domain.ParseNetworkID(c.Param("network"))
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	params, err := ParsePageQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	progress, err := h.executor.GetNetworkSyncProgress(c.Request.Context(), network, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to get sync progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *handler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := h.executor.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get task")
		return
	}
	if task == nil {
		respondNotFound(c, "Task not found")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *handler) GetAddressInteractions(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		respondBadRequest(c, "Invalid address", address)
		return
	}

	var params AddressQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	network, err := params.NetworkFilter()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	interactions, err := h.executor.GetAddressInteractions(c.Request.Context(), domain.NormalizeAddress(address), network)
	if err != nil {
		respondError(c, err, "Failed to get address interactions")
		return
	}
	c.JSON(http.StatusOK, interactions)
}

func (h *handler) GetBulkAddressInteractions(c *gin.Context) {
	var req dto.BulkAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	interactions, err := h.executor.GetBulkAddressInteractions(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to get address interactions")
		return
	}
	c.JSON(http.StatusOK, interactions)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listenerPath reads the contract and listener ids of a nested listener route
func listenerPath(c *gin.Context) (string, string, bool) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return "", "", false
	}
	listenerID, ok := pathID(c, "listener_id")
	if !ok {
		return "", "", false
	}
	return contractID, listenerID, true
}
