package constants

const (
	MAX_PAGE_SIZE                  = 100
	DEFAULT_PAGE_SIZE              = 10
	MAX_ADDRESSES_PER_BULK_REQUEST = 100
	MAX_CONTRACT_NAME_LENGTH       = 255
	MAX_LISTENER_NAME_LENGTH       = 255
)
