package signer

import (
	"math/big"
	"strconv"

	"github.com/rs/zerolog/log"

	"github/vaultbridge/hw-wallet/internal/config"
	"github/vaultbridge/hw-wallet/internal/hardware"
)

// ConfigFromServer builds the signer defaults from the service configuration,
// applying per-chain chain ID and gas price overrides on top of the built-ins.
func ConfigFromServer(cfg config.HardwareWallet) Config {
	out := DefaultConfig()

	for chain, idStr := range cfg.ChainIDs {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			log.Warn().Str("chain", chain).Str("chain_id", idStr).Msg("Ignoring unparsable chain ID override")
			continue
		}
		out.ChainIDs[hardware.Chain(chain)] = id
	}

	if len(cfg.GasDefaults) > 0 {
		out.GasPrices = make(map[hardware.Chain]*big.Int, len(cfg.GasDefaults))
		for chain, priceStr := range cfg.GasDefaults {
			price, ok := new(big.Int).SetString(priceStr, 10)
			if !ok {
				log.Warn().Str("chain", chain).Str("gas_price", priceStr).Msg("Ignoring unparsable gas price override")
				continue
			}
			out.GasPrices[hardware.Chain(chain)] = price
		}
	}

	return out
}
