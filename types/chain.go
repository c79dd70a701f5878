package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ChainName is the human readable identifier of a chain targeted by governance actions.
type ChainName string

// ChainID is the 2-byte wire identifier of a chain (Wormhole chain id space).
type ChainID uint16

const (
	ChainUnset          ChainName = "unset"
	ChainSolana         ChainName = "solana"
	ChainEthereum       ChainName = "ethereum"
	ChainTerra          ChainName = "terra"
	ChainBSC            ChainName = "bsc"
	ChainPolygon        ChainName = "polygon"
	ChainAvalanche      ChainName = "avalanche"
	ChainOasis          ChainName = "oasis"
	ChainAlgorand       ChainName = "algorand"
	ChainAurora         ChainName = "aurora"
	ChainFantom         ChainName = "fantom"
	ChainKarura         ChainName = "karura"
	ChainAcala          ChainName = "acala"
	ChainKlaytn         ChainName = "klaytn"
	ChainCelo           ChainName = "celo"
	ChainNear           ChainName = "near"
	ChainMoonbeam       ChainName = "moonbeam"
	ChainNeon           ChainName = "neon"
	ChainTerra2         ChainName = "terra2"
	ChainInjective      ChainName = "injective"
	ChainOsmosis        ChainName = "osmosis"
	ChainSui            ChainName = "sui"
	ChainAptos          ChainName = "aptos"
	ChainArbitrum       ChainName = "arbitrum"
	ChainOptimism       ChainName = "optimism"
	ChainGnosis         ChainName = "gnosis"
	ChainPythnet        ChainName = "pythnet"
	ChainXpla           ChainName = "xpla"
	ChainBTC            ChainName = "btc"
	ChainBase           ChainName = "base"
	ChainSei            ChainName = "sei"
	ChainStarknet       ChainName = "starknet"
	ChainCardanoMainnet ChainName = "cardano_mainnet"
)

var (
	// ErrUnknownChain is returned when a chain name has no registered id.
	ErrUnknownChain = errors.New("unknown chain")

	// ErrChainConflict is returned when registering a name or id that is already bound differently.
	ErrChainConflict = errors.New("chain already registered")
)

var defaultChains = map[ChainName]ChainID{
	ChainUnset:          0,
	ChainSolana:         1,
	ChainEthereum:       2,
	ChainTerra:          3,
	ChainBSC:            4,
	ChainPolygon:        5,
	ChainAvalanche:      6,
	ChainOasis:          7,
	ChainAlgorand:       8,
	ChainAurora:         9,
	ChainFantom:         10,
	ChainKarura:         11,
	ChainAcala:          12,
	ChainKlaytn:         13,
	ChainCelo:           14,
	ChainNear:           15,
	ChainMoonbeam:       16,
	ChainNeon:           17,
	ChainTerra2:         18,
	ChainInjective:      19,
	ChainOsmosis:        20,
	ChainSui:            21,
	ChainAptos:          22,
	ChainArbitrum:       23,
	ChainOptimism:       24,
	ChainGnosis:         25,
	ChainPythnet:        26,
	ChainXpla:           28,
	ChainBTC:            29,
	ChainBase:           30,
	ChainSei:            32,
	ChainStarknet:       60051,
	ChainCardanoMainnet: 60095,
}

// chainTable is the process-wide bidirectional name <-> id mapping. Reads vastly
// outnumber writes (extra chains are registered once from configuration).
var chainTable = newChainRegistry(defaultChains)

type chainRegistry struct {
	mu     sync.RWMutex
	byName map[ChainName]ChainID
	byID   map[ChainID]ChainName
}

func newChainRegistry(seed map[ChainName]ChainID) *chainRegistry {
	r := &chainRegistry{
		byName: make(map[ChainName]ChainID, len(seed)),
		byID:   make(map[ChainID]ChainName, len(seed)),
	}
	for name, id := range seed {
		r.byName[name] = id
		r.byID[id] = name
	}

	return r
}

// ID returns the wire id of the chain.
func (n ChainName) ID() (ChainID, error) {
	chainTable.mu.RLock()
	defer chainTable.mu.RUnlock()

	id, ok := chainTable.byName[n]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownChain, string(n))
	}

	return id, nil
}

// Name resolves a wire id back to its chain name. The boolean is false when the
// id is not registered.
func (id ChainID) Name() (ChainName, bool) {
	chainTable.mu.RLock()
	defer chainTable.mu.RUnlock()

	name, ok := chainTable.byID[id]

	return name, ok
}

// RegisterChain adds a chain to the table. Registering an identical pair twice is
// a no-op; rebinding an existing name or id fails with ErrChainConflict.
func RegisterChain(name ChainName, id ChainID) error {
	chainTable.mu.Lock()
	defer chainTable.mu.Unlock()

	if existing, ok := chainTable.byName[name]; ok {
		if existing == id {
			return nil
		}

		return fmt.Errorf("%w: %q is bound to %d", ErrChainConflict, string(name), existing)
	}
	if existing, ok := chainTable.byID[id]; ok {
		return fmt.Errorf("%w: id %d is bound to %q", ErrChainConflict, id, string(existing))
	}

	chainTable.byName[name] = id
	chainTable.byID[id] = name

	return nil
}

// ChainNames returns all registered chain names sorted by id.
func ChainNames() []ChainName {
	chainTable.mu.RLock()
	defer chainTable.mu.RUnlock()

	names := make([]ChainName, 0, len(chainTable.byName))
	for name := range chainTable.byName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return chainTable.byName[names[i]] < chainTable.byName[names[j]]
	})

	return names
}
