package dto

import (
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

// AddressInteraction is one contract event a wallet was seen triggering
type AddressInteraction struct {
	Network  domain.NetworkID `json:"network"`
	Contract string           `json:"contract"`
	Event    string           `json:"event"`
}

// BulkAddressInteractions groups contracts by wallet, then by network id
type BulkAddressInteractions map[string]map[string][]string

// MapInteractionsToDTO maps wallet interaction rows to AddressInteraction
func MapInteractionsToDTO(rows []schema.WalletInteraction) []AddressInteraction {
	out := make([]AddressInteraction, len(rows))
	for i, row := range rows {
		out[i] = AddressInteraction{
			Network:  row.Network,
			Contract: row.Contract,
			Event:    row.EventName,
		}
	}
	return out
}

// GroupInteractions builds the bulk lookup response. A contract appears once
// per wallet and network even when several of its events were triggered.
func GroupInteractions(rows []schema.WalletInteraction) BulkAddressInteractions {
	out := BulkAddressInteractions{}
	seen := map[string]bool{}
	for _, row := range rows {
		networks, ok := out[row.Wallet]
		if !ok {
			networks = map[string][]string{}
			out[row.Wallet] = networks
		}

		network := row.Network.String()
		key := row.Wallet + ":" + network + ":" + row.Contract
		if seen[key] {
			continue
		}
		seen[key] = true
		networks[network] = append(networks[network], row.Contract)
	}
	return out
}
