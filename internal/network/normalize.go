package network

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// integers up to this width are emitted as JSON numbers, wider ones as decimal strings
const maxNumericBits = 48

func normalizeLog(contractABI abi.ABI, unnamed map[common.Hash]map[int]bool, log types.Log) (domain.NormalizedEvent, error) {
	if len(log.Topics) == 0 {
		return domain.NormalizedEvent{}, fmt.Errorf("%w: log %s:%d has no topics", domain.ErrInvalidInput, log.TxHash.Hex(), log.Index)
	}

	event, err := contractABI.EventByID(log.Topics[0])
	if err != nil {
		return domain.NormalizedEvent{}, fmt.Errorf("%w: %v", domain.ErrEventNotInInterface, err)
	}

	values := make(map[string]interface{}, len(event.Inputs))
	if len(event.Inputs.NonIndexed()) > 0 {
		if err := event.Inputs.UnpackIntoMap(values, log.Data); err != nil {
			return domain.NormalizedEvent{}, fmt.Errorf("failed to unpack %s data: %w", event.Name, err)
		}
	}

	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if err := abi.ParseTopicsIntoMap(values, indexed, log.Topics[1:]); err != nil {
		return domain.NormalizedEvent{}, fmt.Errorf("failed to parse %s topics: %w", event.Name, err)
	}

	args := make(map[string]interface{}, len(event.Inputs))
	skip := unnamed[event.ID]
	for i, input := range event.Inputs {
		if skip[i] {
			continue
		}
		args[input.Name] = normalizeValue(input.Type, values[input.Name])
	}

	return domain.NormalizedEvent{
		BlockHash:        log.BlockHash.Hex(),
		BlockNumber:      log.BlockNumber,
		TransactionHash:  log.TxHash.Hex(),
		TransactionIndex: log.TxIndex,
		LogIndex:         log.Index,
		Address:          log.Address.Hex(),
		Event:            event.Name,
		Args:             args,
	}, nil
}

// normalizeValue converts a decoded abi value into plain JSON friendly data
func normalizeValue(t abi.Type, value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case common.Hash:
		// indexed dynamic values only carry their keccak hash
		return v.Hex()
	case common.Address:
		return v.Hex()
	case *big.Int:
		if t.Size > 0 && t.Size <= maxNumericBits && v.IsInt64() {
			return v.Int64()
		}
		return v.String()
	case []byte:
		return hexutil.Encode(v)
	case bool, string:
		return v
	}

	rv := reflect.ValueOf(value)
	switch t.T {
	case abi.IntTy:
		if t.Size <= maxNumericBits {
			return rv.Int()
		}
		return big.NewInt(rv.Int()).String()
	case abi.UintTy:
		if t.Size <= maxNumericBits {
			return rv.Uint()
		}
		return new(big.Int).SetUint64(rv.Uint()).String()
	case abi.FixedBytesTy, abi.FunctionTy:
		raw := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(raw), rv)
		return hexutil.Encode(raw)
	case abi.SliceTy, abi.ArrayTy:
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = normalizeValue(*t.Elem, rv.Index(i).Interface())
		}
		return out
	case abi.TupleTy:
		out := make(map[string]interface{}, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			name := rv.Type().Field(i).Name
			if i < len(t.TupleRawNames) && t.TupleRawNames[i] != "" {
				name = t.TupleRawNames[i]
			}
			out[name] = normalizeValue(*elem, rv.Field(i).Interface())
		}
		return out
	}

	return value
}
