package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NetworkID is the EVM chain id of a supported network
type NetworkID int64

const (
	NetworkEthereum  NetworkID = 1
	NetworkBSC       NetworkID = 56
	NetworkPolygon   NetworkID = 137
	NetworkMoonriver NetworkID = 1285
	NetworkAvalanche NetworkID = 43114
)

var networkNames = map[NetworkID]string{
	NetworkEthereum:  "ethereum",
	NetworkBSC:       "bsc",
	NetworkPolygon:   "polygon",
	NetworkMoonriver: "moonriver",
	NetworkAvalanche: "avalanche",
}

// SupportedNetworks lists every network the scanner knows how to index
func SupportedNetworks() []NetworkID {
	return []NetworkID{NetworkEthereum, NetworkBSC, NetworkPolygon, NetworkMoonriver, NetworkAvalanche}
}

// Valid reports whether n is a supported network
func (n NetworkID) Valid() bool {
	_, ok := networkNames[n]
	return ok
}

// Name returns the human readable network name
func (n NetworkID) Name() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return "unknown"
}

func (n NetworkID) String() string {
	return strconv.FormatInt(int64(n), 10)
}

// ParseNetworkID parses a decimal chain id and checks it is supported
func ParseNetworkID(s string) (NetworkID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: network %q is not numeric", ErrInvalidInput, s)
	}
	n := NetworkID(v)
	if !n.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNetwork, v)
	}
	return n, nil
}

// TaskHandler names a registered task handler
type TaskHandler string

const (
	TaskHandlerScheduleMinute30     TaskHandler = "scheduleMinute30"
	TaskHandlerEventListenerCreated TaskHandler = "eventsEventListenerCreated"
	TaskHandlerHistorySyncBroker    TaskHandler = "interactionHistorySyncBroker"
	TaskHandlerHistorySyncResolver  TaskHandler = "interactionHistorySyncResolver"
)

// TaskHandlers returns every known handler name
func TaskHandlers() []TaskHandler {
	return []TaskHandler{
		TaskHandlerScheduleMinute30,
		TaskHandlerEventListenerCreated,
		TaskHandlerHistorySyncBroker,
		TaskHandlerHistorySyncResolver,
	}
}

// Valid reports whether h is one of the known handlers
func (h TaskHandler) Valid() bool {
	for _, known := range TaskHandlers() {
		if h == known {
			return true
		}
	}
	return false
}

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusError      TaskStatus = "error"
)

// Terminal reports whether no handler will run for the task again without a reset
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusDone || s == TaskStatusError
}

// IDParams is the params payload of tasks that refer to a single row
type IDParams struct {
	ID string `json:"id"`
}

// NormalizedEvent is the wire form of a decoded contract log
type NormalizedEvent struct {
	BlockHash        string                 `json:"blockHash"`
	BlockNumber      uint64                 `json:"blockNumber"`
	TransactionHash  string                 `json:"transactionHash"`
	TransactionIndex uint                   `json:"transactionIndex"`
	LogIndex         uint                   `json:"logIndex"`
	Address          string                 `json:"address"`
	Event            string                 `json:"event"`
	Args             map[string]interface{} `json:"args"`
}

// EventsContract identifies the contract of an events batch
type EventsContract struct {
	ID      string    `json:"id"`
	Network NetworkID `json:"network"`
	Address string    `json:"address"`
}

// EventsListener identifies the listener of an events batch
type EventsListener struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EventsMessage is a batch of matched events published on events.<network>
type EventsMessage struct {
	Contract EventsContract    `json:"contract"`
	Listener EventsListener    `json:"listener"`
	From     uint64            `json:"from"`
	To       uint64            `json:"to"`
	Events   []NormalizedEvent `json:"events"`
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsValidAddress reports whether address is a 0x-prefixed 20 byte hex string
func IsValidAddress(address string) bool {
	return addressPattern.MatchString(address)
}

// NormalizeAddress returns the lower case form used for storage and lookups
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
