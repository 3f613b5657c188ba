package adapter

import (
	"context"
	"net/http"

	"github.com/philippseith/signalr"
)

// SignalRServer defines the hub server operations used by the fan-out
//
//go:generate mockgen -source=signalr.go -destination=../mocks/signalr.go -package=mocks -mock_names=SignalRServer=MockSignalRServer,SignalR=MockSignalR
type SignalRServer interface {
	// MapHTTP mounts the hub endpoints on mux under path
	MapHTTP(mux *http.ServeMux, path string)

	// Broadcast invokes target with args on every connected client
	Broadcast(target string, args ...interface{})
}

// SignalR defines an interface for creating SignalR servers
type SignalR interface {
	NewServer(ctx context.Context, hub signalr.HubInterface, logger signalr.StructuredLogger, debug bool) (SignalRServer, error)
}

// RealSignalR implements SignalR using the philippseith/signalr package
type RealSignalR struct{}

// NewSignalR creates a new real SignalR
func NewSignalR() SignalR {
	return &RealSignalR{}
}

func (s *RealSignalR) NewServer(ctx context.Context, hub signalr.HubInterface, logger signalr.StructuredLogger, debug bool) (SignalRServer, error) {
	server, err := signalr.NewServer(ctx,
		signalr.SimpleHubFactory(hub),
		signalr.Logger(logger, debug),
	)
	if err != nil {
		return nil, err
	}
	return &signalRServer{server: server}, nil
}

type signalRServer struct {
	server signalr.Server
}

func (s *signalRServer) MapHTTP(mux *http.ServeMux, path string) {
	s.server.MapHTTP(signalr.WithHTTPServeMux(mux), path)
}

func (s *signalRServer) Broadcast(target string, args ...interface{}) {
	s.server.HubClients().All().Send(target, args...)
}
