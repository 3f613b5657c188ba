package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-event-scanner/internal/api/middleware"
	"github.com/feral-file/ff-event-scanner/internal/api/rest"
	"github.com/feral-file/ff-event-scanner/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-event-scanner/internal/api/shared/errors"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/mocks"
	"github.com/feral-file/ff-event-scanner/internal/store"
)

const (
	testAPIKey     = "test-key"
	testContractID = "6f1c1d0e-8d1f-4a55-9a53-51f1a4a7f001"
	testListenerID = "6f1c1d0e-8d1f-4a55-9a53-51f1a4a7f002"
	testTaskID     = "6f1c1d0e-8d1f-4a55-9a53-51f1a4a7f003"
	testAddress    = "0x5b38da6a701c568545dcfcb03fcb875f56beddc4"
	transferABI    = `[{"anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"}],"name":"Transfer","type":"event"}]`
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testRouter struct {
	executor *mocks.MockAPIExecutor
	router   *gin.Engine
}

func setupTestRouter(t *testing.T) *testRouter {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	exec := mocks.NewMockAPIExecutor(ctrl)
	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(exec), middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	return &testRouter{executor: exec, router: router}
}

// do sends an authenticated request when body is not nil or the method writes
func (tr *testRouter) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
	}
	w := httptest.NewRecorder()
	tr.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var resp struct {
		Error apierrors.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	tr := setupTestRouter(t)

	w := tr.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListContracts(t *testing.T) {
	tr := setupTestRouter(t)
	polygon := domain.NetworkPolygon

	tr.executor.EXPECT().ListContracts(gomock.Any(), store.ContractFilter{
		Network: &polygon,
		Address: testAddress,
		Limit:   100,
		Offset:  20,
	}).Return(&dto.ContractListResponse{Contracts: []dto.ContractResponse{{ID: testContractID}}, Total: 21}, nil)

	w := tr.do(http.MethodGet, "/api/v1/contracts?network=137&address=0x5B38Da6a701c568545dCfcB03FcB875f56beddC4&limit=500&offset=20", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ContractListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(21), resp.Total)
	assert.Nil(t, resp.Offset)
	assert.Equal(t, testContractID, resp.Contracts[0].ID)
}

func TestListContracts_CountOnly(t *testing.T) {
	tr := setupTestRouter(t)

	tr.executor.EXPECT().CountContracts(gomock.Any(), store.ContractFilter{Name: "feral", Limit: 10}).
		Return(&dto.CountResponse{Count: 3}, nil)

	w := tr.do(http.MethodGet, "/api/v1/contracts?name=feral&count=yes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestListContracts_InvalidQuery(t *testing.T) {
	tr := setupTestRouter(t)

	tests := []struct {
		name  string
		query string
	}{
		{"unknown network", "network=10"},
		{"negative offset", "offset=-1"},
		{"non numeric limit", "limit=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tr.do(http.MethodGet, "/api/v1/contracts?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeError(t, w).Code)
		})
	}
}

func TestCreateContract(t *testing.T) {
	body := `{"name":"Feral File","network":1,"address":"0x5B38Da6a701c568545dCfcB03FcB875f56beddC4","start_height":100,"abi":` + transferABI + `}`

	t.Run("created", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().CreateContract(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, bool, error) {
				assert.Equal(t, testAddress, req.Address)
				assert.Equal(t, uint64(100), *req.StartHeight)
				return &dto.ContractResponse{ID: testContractID, Address: req.Address}, true, nil
			})

		w := tr.do(http.MethodPost, "/api/v1/contracts", body)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("already registered", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().CreateContract(gomock.Any(), gomock.Any()).
			Return(&dto.ContractResponse{ID: testContractID}, false, nil)

		w := tr.do(http.MethodPost, "/api/v1/contracts", body)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodPost, "/api/v1/contracts", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apierrors.ErrCodeBadRequest, decodeError(t, w).Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodPost, "/api/v1/contracts", `{"name":"x","network":1,"address":"0x1","start_height":1,"abi":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, apiErr.Code)
		assert.Equal(t, "invalid address: 0x1", apiErr.Details)
	})

	t.Run("missing credentials", func(t *testing.T) {
		tr := setupTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/contracts", strings.NewReader(body))
		w := httptest.NewRecorder()
		tr.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apierrors.ErrCodeUnauthorized, decodeError(t, w).Code)
	})

	t.Run("database failure", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().CreateContract(gomock.Any(), gomock.Any()).
			Return(nil, false, apierrors.NewDatabaseError("Failed to create contract: connection refused"))

		w := tr.do(http.MethodPost, "/api/v1/contracts", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apierrors.ErrCodeDatabaseError, decodeError(t, w).Code)
	})
}

func TestGetContract(t *testing.T) {
	tr := setupTestRouter(t)

	tr.executor.EXPECT().GetContract(gomock.Any(), testContractID).Return(&dto.ContractResponse{ID: testContractID}, nil)
	w := tr.do(http.MethodGet, "/api/v1/contracts/"+testContractID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	tr.executor.EXPECT().GetContract(gomock.Any(), testContractID).Return(nil, nil)
	w = tr.do(http.MethodGet, "/api/v1/contracts/"+testContractID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Contract not found", decodeError(t, w).Message)

	w = tr.do(http.MethodGet, "/api/v1/contracts/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", decodeError(t, w).Message)
}

func TestUpdateContract(t *testing.T) {
	tr := setupTestRouter(t)

	tr.executor.EXPECT().UpdateContract(gomock.Any(), testContractID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req dto.UpdateContractRequest) (*dto.ContractResponse, error) {
			require.NotNil(t, req.Enabled)
			assert.False(t, *req.Enabled)
			return &dto.ContractResponse{ID: testContractID}, nil
		})

	w := tr.do(http.MethodPut, "/api/v1/contracts/"+testContractID, `{"enabled":false}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = tr.do(http.MethodPut, "/api/v1/contracts/"+testContractID, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "nothing to update", decodeError(t, w).Details)
}

func TestDeleteContract(t *testing.T) {
	tr := setupTestRouter(t)

	tr.executor.EXPECT().DeleteContract(gomock.Any(), testContractID).Return(true, nil)
	w := tr.do(http.MethodDelete, "/api/v1/contracts/"+testContractID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	tr.executor.EXPECT().DeleteContract(gomock.Any(), testContractID).Return(false, nil)
	w = tr.do(http.MethodDelete, "/api/v1/contracts/"+testContractID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetContractStatistics(t *testing.T) {
	tr := setupTestRouter(t)

	tr.executor.EXPECT().GetContractStatistics(gomock.Any(), testContractID).
		Return(&dto.ContractStatisticsResponse{UniqueWalletsCount: 7}, nil)

	w := tr.do(http.MethodGet, "/api/v1/contracts/"+testContractID+"/statistics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unique_wallets_count":7}`, w.Body.String())
}

func TestEventListenerRoutes(t *testing.T) {
	listenerPath := "/api/v1/contracts/" + testContractID + "/listeners/" + testListenerID

	t.Run("list", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().ListEventListeners(gomock.Any(), testContractID, 5, 10).
			Return(&dto.EventListenerListResponse{Total: 0}, nil)

		w := tr.do(http.MethodGet, "/api/v1/contracts/"+testContractID+"/listeners?limit=5&offset=10", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("count of unknown contract", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().CountEventListeners(gomock.Any(), testContractID).Return(nil, nil)

		w := tr.do(http.MethodGet, "/api/v1/contracts/"+testContractID+"/listeners?count=yes", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("create", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().CreateEventListener(gomock.Any(), testContractID, dto.EventListenerRequest{Name: "Transfer"}).
			Return(&dto.EventListenerResponse{ID: testListenerID, Name: "Transfer"}, true, nil)

		w := tr.do(http.MethodPost, "/api/v1/contracts/"+testContractID+"/listeners", `{"name":" Transfer "}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("create with event outside the abi", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().CreateEventListener(gomock.Any(), testContractID, gomock.Any()).
			Return(nil, false, apierrors.NewValidationError("event not found in contract interface: Approval"))

		w := tr.do(http.MethodPost, "/api/v1/contracts/"+testContractID+"/listeners", `{"name":"Approval"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeError(t, w).Code)
	})

	t.Run("provisioning failure", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().CreateEventListener(gomock.Any(), testContractID, gomock.Any()).
			Return(nil, false, apierrors.NewServiceError("Failed to provision history sync", "db down"))

		w := tr.do(http.MethodPost, "/api/v1/contracts/"+testContractID+"/listeners", `{"name":"Transfer"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("get", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().GetEventListener(gomock.Any(), testContractID, testListenerID).Return(nil, nil)

		w := tr.do(http.MethodGet, listenerPath, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Event listener not found", decodeError(t, w).Message)
	})

	t.Run("invalid listener id", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodGet, "/api/v1/contracts/"+testContractID+"/listeners/42", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid listener_id", decodeError(t, w).Message)
	})

	t.Run("update", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().UpdateEventListener(gomock.Any(), testContractID, testListenerID, dto.EventListenerRequest{Name: "Approval"}).
			Return(&dto.EventListenerResponse{ID: testListenerID, Name: "Approval"}, nil)

		w := tr.do(http.MethodPut, listenerPath, `{"name":"Approval"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().DeleteEventListener(gomock.Any(), testContractID, testListenerID).Return(true, nil)

		w := tr.do(http.MethodDelete, listenerPath, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestHistorySyncRoutes(t *testing.T) {
	syncPath := "/api/v1/listeners/" + testListenerID + "/history-syncs"

	t.Run("create", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().CreateHistorySync(gomock.Any(), testListenerID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req dto.CreateHistorySyncRequest) (*dto.HistorySyncResponse, error) {
				assert.Nil(t, req.SyncHeight)
				assert.Equal(t, uint64(5000), *req.EndHeight)
				return &dto.HistorySyncResponse{ID: "hs-1"}, nil
			})

		w := tr.do(http.MethodPost, syncPath, `{"end_height":5000}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("create without end height", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodPost, syncPath, `{"sync_height":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "end_height is required", decodeError(t, w).Details)
	})

	t.Run("list of unknown listener", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.executor.EXPECT().ListHistorySyncs(gomock.Any(), testListenerID).Return(nil, nil)

		w := tr.do(http.MethodGet, syncPath, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPromptlySyncRoutes(t *testing.T) {
	tr := setupTestRouter(t)
	path := "/api/v1/listeners/" + testListenerID + "/promptly-sync"

	tr.executor.EXPECT().EnablePromptlySync(gomock.Any(), testListenerID).
		Return(&dto.PromptlySyncResponse{ID: "p-1", EventListenerID: testListenerID}, nil)
	w := tr.do(http.MethodPut, path, "")
	assert.Equal(t, http.StatusOK, w.Code)

	tr.executor.EXPECT().DisablePromptlySync(gomock.Any(), testListenerID).Return(false, nil)
	w = tr.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Promptly sync not found", decodeError(t, w).Message)
}

func TestSyncProgressRoutes(t *testing.T) {
	tr := setupTestRouter(t)

	tr.executor.EXPECT().GetSyncProgressReport(gomock.Any()).Return(&dto.SyncProgressReport{
		Networks: []dto.NetworkSyncProgress{{Network: domain.NetworkBSC, Name: "bsc", Error: "dial tcp: timeout"}},
	}, nil)
	w := tr.do(http.MethodGet, "/api/v1/reports/sync-progress", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"dial tcp: timeout"`)

	tr.executor.EXPECT().GetNetworkSyncProgress(gomock.Any(), domain.NetworkPolygon, 10, 0).
		Return(&dto.ListenerSyncProgressListResponse{Network: domain.NetworkPolygon, BlockNumber: 100}, nil)
	w = tr.do(http.MethodGet, "/api/v1/reports/sync-progress/137", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = tr.do(http.MethodGet, "/api/v1/reports/sync-progress/optimism", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTask(t *testing.T) {
	tr := setupTestRouter(t)

	tr.executor.EXPECT().GetTask(gomock.Any(), testTaskID).
		Return(&dto.TaskResponse{ID: testTaskID, Status: domain.TaskStatusDone}, nil)
	w := tr.do(http.MethodGet, "/api/v1/tasks/"+testTaskID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	tr.executor.EXPECT().GetTask(gomock.Any(), testTaskID).Return(nil, errors.New("connection reset"))
	w = tr.do(http.MethodGet, "/api/v1/tasks/"+testTaskID, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	apiErr := decodeError(t, w)
	assert.Equal(t, apierrors.ErrCodeInternalError, apiErr.Code)
	assert.Equal(t, "Failed to get task", apiErr.Message)
}

func TestAddressRoutes(t *testing.T) {
	tr := setupTestRouter(t)
	eth := domain.NetworkEthereum

	tr.executor.EXPECT().GetAddressInteractions(gomock.Any(), testAddress, &eth).
		Return([]dto.AddressInteraction{{Network: eth, Contract: "0x111", Event: "Transfer"}}, nil)
	w := tr.do(http.MethodGet, "/api/v1/addresses/0x5B38Da6a701c568545dCfcB03FcB875f56beddC4?network=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"network":1,"contract":"0x111","event":"Transfer"}]`, w.Body.String())

	w = tr.do(http.MethodGet, "/api/v1/addresses/tz1abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid address", decodeError(t, w).Message)

	tr.executor.EXPECT().GetBulkAddressInteractions(gomock.Any(), []string{testAddress}).
		Return(dto.BulkAddressInteractions{testAddress: {"1": {"0x111"}}}, nil)
	w = tr.do(http.MethodPost, "/api/v1/addresses/bulk", `["0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"]`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"`+testAddress+`":{"1":["0x111"]}}`, w.Body.String())

	w = tr.do(http.MethodPost, "/api/v1/addresses/bulk", `[]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
