package network

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// ParseABI parses a contract interface and rejects argument types the chain
// cannot encode, such as uint7 or bytes33, which abi.JSON lets through.
func ParseABI(abiJSON []byte) (abi.ABI, error) {
	if len(bytes.TrimSpace(abiJSON)) == 0 {
		return abi.ABI{}, fmt.Errorf("%w: empty abi", domain.ErrInvalidInput)
	}

	parsed, err := abi.JSON(bytes.NewReader(abiJSON))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	check := func(kind, name string, args abi.Arguments) error {
		for _, arg := range args {
			if err := validateType(arg.Type); err != nil {
				return fmt.Errorf("%w: %s %s argument %s: %v", domain.ErrInvalidInput, kind, name, arg.Name, err)
			}
		}
		return nil
	}
	for name, event := range parsed.Events {
		if err := check("event", name, event.Inputs); err != nil {
			return abi.ABI{}, err
		}
	}
	for name, method := range parsed.Methods {
		if err := check("method", name, method.Inputs); err != nil {
			return abi.ABI{}, err
		}
		if err := check("method", name, method.Outputs); err != nil {
			return abi.ABI{}, err
		}
	}
	for name, e := range parsed.Errors {
		if err := check("error", name, e.Inputs); err != nil {
			return abi.ABI{}, err
		}
	}

	return parsed, nil
}

func validateType(t abi.Type) error {
	switch t.T {
	case abi.IntTy, abi.UintTy:
		if t.Size < 8 || t.Size > 256 || t.Size%8 != 0 {
			return fmt.Errorf("unsupported integer width %d", t.Size)
		}
	case abi.FixedBytesTy:
		if t.Size < 1 || t.Size > 32 {
			return fmt.Errorf("unsupported fixed bytes size %d", t.Size)
		}
	case abi.SliceTy, abi.ArrayTy:
		return validateType(*t.Elem)
	case abi.TupleTy:
		for _, elem := range t.TupleElems {
			if err := validateType(*elem); err != nil {
				return err
			}
		}
	}
	return nil
}

// unnamedEventInputs finds the event inputs without a name in the raw abi.
// go-ethereum renames them to arg<i>, which must not leak into the args.
func unnamedEventInputs(abiJSON []byte) (map[common.Hash]map[int]bool, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(abiJSON, &entries); err != nil {
		return nil, err
	}

	unnamed := make(map[common.Hash]map[int]bool)
	for _, raw := range entries {
		var entry struct {
			Type   string `json:"type"`
			Inputs []struct {
				Name string `json:"name"`
			} `json:"inputs"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, err
		}
		if entry.Type != "event" {
			continue
		}

		positions := make(map[int]bool)
		for i, input := range entry.Inputs {
			if input.Name == "" {
				positions[i] = true
			}
		}
		if len(positions) == 0 {
			continue
		}

		// Parse the entry alone to learn its event id, overloads included
		single, err := abi.JSON(bytes.NewReader(append(append([]byte{'['}, raw...), ']')))
		if err != nil {
			return nil, err
		}
		for _, event := range single.Events {
			unnamed[event.ID] = positions
		}
	}
	return unnamed, nil
}
