package fordefi

import (
	"fmt"
	"strings"
)

// Chain identifies a network in Fordefi's chain naming scheme.
type Chain string

// Chains this tool knows how to build asset identifiers for.
const (
	ChainEthereum Chain = "evm_1"
	ChainArbitrum Chain = "evm_42161"
	ChainBSC      Chain = "evm_56"
	ChainSolana   Chain = "solana_mainnet"
)

var knownChains = map[Chain]struct{}{
	ChainEthereum: {},
	ChainArbitrum: {},
	ChainBSC:      {},
	ChainSolana:   {},
}

// IsSolana reports whether addresses on this chain use base58 representation.
func (c Chain) IsSolana() bool {
	return c == ChainSolana
}

func (c Chain) String() string {
	return string(c)
}

// ParseChain validates a chain name against the known set.
func ParseChain(s string) (Chain, error) {
	c := Chain(strings.TrimSpace(s))
	if _, ok := knownChains[c]; !ok {
		return "", fmt.Errorf("unknown chain %q", s)
	}
	return c, nil
}

// ParseChains parses a list of chain names, preserving order.
func ParseChains(names []string) ([]Chain, error) {
	chains := make([]Chain, 0, len(names))
	for _, name := range names {
		c, err := ParseChain(name)
		if err != nil {
			return nil, err
		}
		chains = append(chains, c)
	}
	return chains, nil
}
