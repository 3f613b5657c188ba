package rest

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feral-file/ff-event-scanner/internal/api/shared/constants"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store"
)

// PageQueryParams holds pagination query parameters
type PageQueryParams struct {
	Limit  int `form:"limit,default=10"`
	Offset int `form:"offset,default=0"`
}

// normalize caps the page size and rejects negative values
func (p *PageQueryParams) normalize() error {
	if p.Limit < 0 || p.Offset < 0 {
		return errors.New("limit and offset must not be negative")
	}
	if p.Limit == 0 {
		p.Limit = constants.DEFAULT_PAGE_SIZE
	}
	if p.Limit > constants.MAX_PAGE_SIZE {
		p.Limit = constants.MAX_PAGE_SIZE
	}
	return nil
}

// ListContractsQueryParams holds query parameters for GET /contracts
type ListContractsQueryParams struct {
	PageQueryParams
	Network string `form:"network"`
	Address string `form:"address"`
	Name    string `form:"name"`
	Count   string `form:"count"` // "yes" returns only the count
}

// CountOnly reports whether the caller asked for the count instead of the list
func (p *ListContractsQueryParams) CountOnly() bool {
	return p.Count == "yes"
}

// Filter converts the parameters into a store filter
func (p *ListContractsQueryParams) Filter() (store.ContractFilter, error) {
	filter := store.ContractFilter{
		Address: domain.NormalizeAddress(p.Address),
		Name:    p.Name,
		Limit:   p.Limit,
		Offset:  p.Offset,
	}
	if p.Network != "" {
		network, err := domain.ParseNetworkID(p.Network)
		if err != nil {
			return filter, err
		}
		filter.Network = &network
	}
	return filter, nil
}

// ParseListContractsQuery parses query parameters for GET /contracts
func ParseListContractsQuery(c *gin.Context) (*ListContractsQueryParams, error) {
	var params ListContractsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if err := params.normalize(); err != nil {
		return nil, err
	}
	return &params, nil
}

// ListListenersQueryParams holds query parameters for GET /contracts/:id/listeners
type ListListenersQueryParams struct {
	PageQueryParams
	Count string `form:"count"`
}

// CountOnly reports whether the caller asked for the count instead of the list
func (p *ListListenersQueryParams) CountOnly() bool {
	return p.Count == "yes"
}

// ParseListListenersQuery parses query parameters for GET /contracts/:id/listeners
func ParseListListenersQuery(c *gin.Context) (*ListListenersQueryParams, error) {
	var params ListListenersQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if err := params.normalize(); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParsePageQuery parses pagination query parameters
func ParsePageQuery(c *gin.Context) (*PageQueryParams, error) {
	var params PageQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if err := params.normalize(); err != nil {
		return nil, err
	}
	return &params, nil
}

// AddressQueryParams holds query parameters for GET /addresses/:address
type AddressQueryParams struct {
	Network string `form:"network"`
}

// NetworkFilter returns the parsed network, nil when absent
func (p *AddressQueryParams) NetworkFilter() (*domain.NetworkID, error) {
	if p.Network == "" {
		return nil, nil
	}
	network, err := domain.ParseNetworkID(p.Network)
	if err != nil {
		return nil, err
	}
	return &network, nil
}

// pathID reads a uuid path parameter
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if err := uuid.Validate(id); err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid %s", name), id)
		return "", false
	}
	return id, true
}
