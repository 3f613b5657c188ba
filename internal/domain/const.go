package domain

import "time"

const (
	// Task defaults
	DefaultTaskPriority = 4
	MinTaskPriority     = 0
	MaxTaskPriority     = 9
	DefaultTaskTopic    = "default"
	MaxTaskInfoLength   = 5000

	// DefaultHistorySyncStep is the block range of one resolver chunk when a network does not override it
	DefaultHistorySyncStep uint64 = 5000

	// DefaultResolverDeferDelay is how long a caught-up perpetual sync waits before looking again
	DefaultResolverDeferDelay = time.Minute

	// DefaultTaskLease is how long a processing task may go without a heartbeat before it is considered stuck
	DefaultTaskLease = 5 * time.Minute

	// InteractionPageSize bounds how many logs are attributed before yielding
	InteractionPageSize = 100

	// SyncHeightCacheKeyFormat is the redis key holding the live poll cursor of a listener
	SyncHeightCacheKeyFormat = "eventListener:%s:syncHeight"
)
