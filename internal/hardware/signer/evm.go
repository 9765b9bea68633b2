package signer

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

const base10 = 10

// parseAmount parses a decimal string in the chain's smallest unit.
func parseAmount(value, field string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(value, base10)
	if !ok {
		return nil, errors.Errorf("invalid %s format: %q", field, value)
	}
	return v, nil
}

// evmFees resolves the gas pricing of an EVM transaction, defaulting the
// legacy gas price when neither pricing style is present.
type evmFees struct {
	FeeMarket            bool
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

func (c Config) fees(tx *hardware.TransactionData) (*evmFees, error) {
	if tx.HasFeeMarketFields() {
		maxFee, err := parseAmount(tx.MaxFeePerGas, "maxFeePerGas")
		if err != nil {
			return nil, err
		}
		tip, err := parseAmount(tx.MaxPriorityFeePerGas, "maxPriorityFeePerGas")
		if err != nil {
			return nil, err
		}
		return &evmFees{FeeMarket: true, MaxFeePerGas: maxFee, MaxPriorityFeePerGas: tip}, nil
	}

	gasPrice := new(big.Int).Set(c.defaultGasPrice(tx.Chain))
	if tx.GasPrice != "" {
		parsed, err := parseAmount(tx.GasPrice, "gasPrice")
		if err != nil {
			return nil, err
		}
		gasPrice = parsed
	}
	return &evmFees{GasPrice: gasPrice}, nil
}

// buildUnsignedEVMPayload RLP-encodes the unsigned transaction the device must
// sign: the EIP-155 legacy layout, or the typed EIP-1559 layout with the 0x02
// tag when fee-market fields are present.
func (c Config) buildUnsignedEVMPayload(tx *hardware.TransactionData) (string, error) {
	value, err := parseAmount(tx.Value, "value")
	if err != nil {
		return "", err
	}
	fees, err := c.fees(tx)
	if err != nil {
		return "", err
	}

	chainID := c.chainID(tx.Chain)
	to := common.HexToAddress(tx.To)
	nonce := c.nonce(tx)
	gas := c.gasLimit(tx)

	var payload []byte
	if fees.FeeMarket {
		encoded, err := rlp.EncodeToBytes([]interface{}{
			big.NewInt(chainID),
			nonce,
			fees.MaxPriorityFeePerGas,
			fees.MaxFeePerGas,
			gas,
			to,
			value,
			tx.Data,
			gethtypes.AccessList{},
		})
		if err != nil {
			return "", errors.Wrap(err, "failed to encode fee-market payload")
		}
		payload = append([]byte{gethtypes.DynamicFeeTxType}, encoded...)
	} else {
		payload, err = rlp.EncodeToBytes([]interface{}{
			nonce,
			fees.GasPrice,
			gas,
			to,
			value,
			tx.Data,
			big.NewInt(chainID),
			uint(0),
			uint(0),
		})
		if err != nil {
			return "", errors.Wrap(err, "failed to encode legacy payload")
		}
	}

	return hexutil.Encode(payload), nil
}

// assembleEVMTransaction attaches the parsed device signature to the
// transaction, re-serializes the full signed transaction and derives its hash
// from the serialized bytes.
func (c Config) assembleEVMTransaction(tx *hardware.TransactionData, comp *signatureComponents) (*hardware.SignedTransaction, error) {
	value, err := parseAmount(tx.Value, "value")
	if err != nil {
		return nil, err
	}
	fees, err := c.fees(tx)
	if err != nil {
		return nil, err
	}

	chainID := big.NewInt(c.chainID(tx.Chain))
	to := common.HexToAddress(tx.To)
	nonce := c.nonce(tx)
	gas := c.gasLimit(tx)

	var unsigned *gethtypes.Transaction
	if fees.FeeMarket {
		unsigned = gethtypes.NewTx(&gethtypes.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: fees.MaxPriorityFeePerGas,
			GasFeeCap: fees.MaxFeePerGas,
			Gas:       gas,
			To:        &to,
			Value:     value,
			Data:      tx.Data,
		})
	} else {
		unsigned = gethtypes.NewTx(&gethtypes.LegacyTx{
			Nonce:    nonce,
			GasPrice: fees.GasPrice,
			Gas:      gas,
			To:       &to,
			Value:    value,
			Data:     tx.Data,
		})
	}

	signed, err := unsigned.WithSignature(gethtypes.LatestSignerForChainID(chainID), comp.compact())
	if err != nil {
		return nil, errors.Wrap(hardware.ErrMalformedSignature, err.Error())
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal signed transaction")
	}

	return &hardware.SignedTransaction{
		RawTransaction: hexutil.Encode(raw),
		Hash:           signed.Hash().Hex(),
		Transaction:    *tx,
	}, nil
}

// nativeUnits maps a chain to the decimals of its native unit.
func nativeUnits(chain hardware.Chain) (symbol string, decimals int) {
	switch chain {
	case hardware.ChainEthereum:
		return "ETH", 18
	case hardware.ChainPolygon:
		return "POL", 18
	case hardware.ChainBSC:
		return "BNB", 18
	case hardware.ChainBitcoin:
		return "BTC", 8
	default:
		return strings.ToUpper(string(chain)), 18
	}
}

// formatNativeAmount renders a smallest-unit decimal string in the chain's
// native unit without rounding, so the displayed amount is exactly what gets
// signed.
func formatNativeAmount(value string, decimals int) (string, error) {
	v, err := parseAmount(value, "value")
	if err != nil {
		return "", err
	}

	divisor := new(big.Int).Exp(big.NewInt(base10), big.NewInt(int64(decimals)), nil)
	quot, rem := new(big.Int).QuoRem(v, divisor, new(big.Int))

	if rem.Sign() == 0 {
		return quot.String(), nil
	}

	padded := rem.String()
	if len(padded) < decimals {
		padded = strings.Repeat("0", decimals-len(padded)) + padded
	}
	return fmt.Sprintf("%s.%s", quot.String(), strings.TrimRight(padded, "0")), nil
}

// evmDisplayData builds the confirmation projection of an EVM transaction.
func (c Config) evmDisplayData(tx *hardware.TransactionData) (map[string]string, error) {
	symbol, decimals := nativeUnits(tx.Chain)
	amount, err := formatNativeAmount(tx.Value, decimals)
	if err != nil {
		return nil, err
	}

	fees, err := c.fees(tx)
	if err != nil {
		return nil, err
	}

	display := map[string]string{
		"chain":    string(tx.Chain),
		"from":     tx.From,
		"to":       tx.To,
		"amount":   fmt.Sprintf("%s %s", amount, symbol),
		"gasLimit": fmt.Sprintf("%d", c.gasLimit(tx)),
		"nonce":    fmt.Sprintf("%d", c.nonce(tx)),
	}
	if len(tx.Data) > 0 {
		display["data"] = hexutil.Encode(tx.Data)
	}
	if fees.FeeMarket {
		display["maxFeePerGas"] = fees.MaxFeePerGas.String()
		display["maxPriorityFeePerGas"] = fees.MaxPriorityFeePerGas.String()
	} else {
		display["gasPrice"] = fees.GasPrice.String()
	}

	return display, nil
}
