package ssz

import "fmt"

// ForkID orders the beacon-chain hard forks relevant to schema dispatch.
type ForkID int

const (
	Phase0 ForkID = iota
	Altair
	Bellatrix
	Capella
	Deneb
	Electra
	Fulu
)

// ChainID selects a chain's fixed-size variants (mainnet vector lengths vs.
// Gnosis's smaller withdrawals limit).
type ChainID int

const (
	ChainMainnet ChainID = iota
	ChainGnosis
	ChainMinimal
)

// Category enumerates the named schemas of the registry. TypeFor resolves
// all of them except the ten per-method proof categories
// (CategoryTransactionProof through CategoryBlockHashProof), for which it
// returns ErrUnknownType; those containers are reachable only as
// alternatives of the request envelope's proof union.
type Category int

const (
	CategorySignedBeaconBlock Category = iota
	CategoryBeaconBlockBody
	CategoryLightClientUpdate
	CategoryLightClientUpdateList
	CategoryLightClientBootstrap
	CategoryTransactionProof
	CategoryReceiptProof
	CategoryLogsProof
	CategoryAccountProof
	CategoryCallProof
	CategorySyncProof
	CategoryBlockProof
	CategoryBlockNumberProof
	CategoryStateProof
	CategoryBlockHashProof
	CategoryRequestEnvelope
	CategoryBeaconBlockHeader
	CategorySyncCommittee
	CategorySyncAggregate
	CategoryExecutionPayloadHeader
	CategoryBeaconState
)

// withdrawalsLimit returns the Vector/List bound for withdrawals per
// execution payload: 16 on mainnet and Gnosis's Deneb variant uses 8 (the
// divergence called out in spec design notes), fed into descriptor
// construction rather than duplicating whole schemas.
func withdrawalsLimit(chainID ChainID) int {
	if chainID == ChainGnosis {
		return 8
	}
	return 16
}

// blockRootsLength returns the BlockRoots/StateRoots vector length: the
// mainnet/Gnosis SLOTS_PER_HISTORICAL_ROOT (8192) or the minimal testnet's
// smaller vector (64).
func blockRootsLength(chainID ChainID) int {
	if chainID == ChainMinimal {
		return 64
	}
	return 8192
}

// TypeFor is the schema registry's single lookup: given a category, fork,
// and chain, it returns the immutable descriptor for that combination (or
// ErrUnknownType for the per-method proof categories, see Category). The
// Electra body shape (new attestation/slashing limits, committee bits,
// execution-requests) is produced whenever fork >= Electra; Gnosis's
// withdrawals limit is threaded into execution-payload construction rather
// than branching the whole schema. Dispatch happens here, at descriptor
// construction, never at decode time.
func TypeFor(category Category, fork ForkID, chainID ChainID) (*Descriptor, error) {
	switch category {
	case CategoryBeaconBlockHeader:
		return beaconBlockHeaderType(), nil
	case CategorySignedBeaconBlock:
		return signedBeaconBlockType(fork, chainID)
	case CategoryBeaconBlockBody:
		return beaconBlockBodyType(fork, chainID)
	case CategoryExecutionPayloadHeader:
		return executionPayloadHeaderType(fork, chainID)
	case CategorySyncCommittee:
		return syncCommitteeType(chainID)
	case CategorySyncAggregate:
		return syncAggregateType(chainID)
	case CategoryLightClientUpdate:
		return lightClientUpdateType(fork, chainID)
	case CategoryLightClientUpdateList:
		return List("LightClientUpdateList", mustType(lightClientUpdateType(fork, chainID)), 128), nil
	case CategoryLightClientBootstrap:
		return lightClientBootstrapType(fork, chainID)
	case CategoryRequestEnvelope:
		return requestEnvelopeType(fork, chainID)
	case CategoryBeaconState:
		return beaconStateType(fork, chainID)
	default:
		return nil, fmt.Errorf("%w: category %d at fork %d chain %d", ErrUnknownType, category, fork, chainID)
	}
}

func mustType(d *Descriptor, err error) *Descriptor {
	if err != nil {
		panic(err)
	}
	return d
}
