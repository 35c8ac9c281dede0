package config

import (
	"fmt"
	"strings"
)

// TokenInfo contains token metadata for quoted pools.
type TokenInfo struct {
	Symbol   string // Token symbol (USDC, USDT, etc.)
	Mint     string // SPL token mint address
	Decimals int    // Token decimals (6 for USDC/USDT, 9 for wrapped SOL)
}

// TokenRegistry maps token symbols to their mint information. Hardcoded
// registry of well-known stable assets on Solana mainnet.
var TokenRegistry = map[string]TokenInfo{
	"USDC": {
		Symbol:   "USDC",
		Mint:     "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		Decimals: 6,
	},
	"USDT": {
		Symbol:   "USDT",
		Mint:     "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
		Decimals: 6,
	},
	"PYUSD": {
		Symbol:   "PYUSD",
		Mint:     "2b1kV6DkPAnxd5ixfnxCpjxmKwqjjaYmCZfHsFu24GXo",
		Decimals: 6,
	},
	"USDH": {
		Symbol:   "USDH",
		Mint:     "USDH1SM1ojwWUga67PGrgFWUHibbjqMvuMaDkRJTgkX",
		Decimals: 6,
	},
	"UXD": {
		Symbol:   "UXD",
		Mint:     "7kbnvuGBxxj8AG9qp8Scn56muWGaRaFqxg1FsRp3PaFT",
		Decimals: 6,
	},
	"MSOL": {
		Symbol:   "MSOL",
		Mint:     "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So",
		Decimals: 9,
	},
	"SOL": {
		Symbol:   "SOL",
		Mint:     "So11111111111111111111111111111111111111112",
		Decimals: 9,
	},
}

// GetTokenInfo looks a token up by symbol, case-insensitively.
func GetTokenInfo(symbol string) (TokenInfo, error) {
	info, ok := TokenRegistry[strings.ToUpper(symbol)]
	if !ok {
		return TokenInfo{}, fmt.Errorf("unknown token symbol: %s", symbol)
	}
	return info, nil
}

// LookupByMint finds a token by its mint address.
func LookupByMint(mint string) (TokenInfo, bool) {
	for _, info := range TokenRegistry {
		if info.Mint == mint {
			return info, true
		}
	}
	return TokenInfo{}, false
}

// ParsePairName splits "USDC-USDT" into its two token infos.
func ParsePairName(pair string) (TokenInfo, TokenInfo, error) {
	parts := strings.Split(pair, "-")
	if len(parts) != 2 {
		return TokenInfo{}, TokenInfo{}, fmt.Errorf("invalid pair name %q, expected TOKEN-TOKEN", pair)
	}

	base, err := GetTokenInfo(parts[0])
	if err != nil {
		return TokenInfo{}, TokenInfo{}, err
	}
	quote, err := GetTokenInfo(parts[1])
	if err != nil {
		return TokenInfo{}, TokenInfo{}, err
	}
	return base, quote, nil
}
