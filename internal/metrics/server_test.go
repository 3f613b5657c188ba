package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-event-scanner/internal/logger"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServer_Disabled(t *testing.T) {
	s := NewServer("")
	require.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}

func TestServer_ExposesMetrics(t *testing.T) {
	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	QueueTaskInc("interactionHistorySyncResolver", "done")
	RPCRequestInc("ethereum", "eth_blockNumber")

	s := NewServer(addr)
	require.NoError(t, s.Start(ctx))
	defer func() {
		assert.NoError(t, s.Stop(context.Background()))
	}()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		body = string(data)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	assert.True(t, strings.Contains(body, `scanner_queue_tasks_total{handler="interactionHistorySyncResolver",status="done"}`))
	assert.True(t, strings.Contains(body, `scanner_rpc_requests_total{method="eth_blockNumber",network="ethereum"}`))
	assert.True(t, strings.Contains(body, "scanner_uptime_seconds"))
}
