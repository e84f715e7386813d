// Package synccommittee implements the trust-propagation engine: it ingests
// signed light-client updates, checks them against known committee keys and
// BLS aggregate signatures, and advances a persisted per-chain trust state by
// whole sync periods. Grounded on the teacher's cache.go (the bounded
// checkpoint ring this package's TrustState.blocks generalizes) and
// header.go (the errgroup/ticker ingestion loop Watch follows).
package synccommittee

// BeaconBlockHeader mirrors ssz's BeaconBlockHeader container as plain Go
// values once decoded, since the sync engine reasons about header identity
// and parent-linkage rather than re-walking borrowed SSZ bytes.
type BeaconBlockHeader struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    [32]byte
	StateRoot     [32]byte
	BodyRoot      [32]byte
}

// LightClientHeader pairs a beacon header with the execution-layer header it
// commits to and the Merkle branch proving the execution header's inclusion
// in the beacon body, per spec §4.5's attestedHeader/finalizedHeader shape.
type LightClientHeader struct {
	Beacon           BeaconBlockHeader
	ExecutionRoot    [32]byte
	ExecutionBranch  [][32]byte
}

// SyncCommitteeKeys is the 512-key (32 on minimal) committee plus its
// aggregate public key, identified externally by period.
type SyncCommitteeKeys struct {
	Pubkeys         [][]byte // compressed 48-byte BLS12-381 G1 points
	AggregatePubkey []byte
}

// SyncAggregate is a sync committee's per-slot attestation: which of its 512
// members participated, and their aggregate BLS signature.
type SyncAggregate struct {
	Bits      []bool
	Signature []byte // compressed 96-byte BLS12-381 G2 point
}

// ParticipationCount returns the number of set bits in the aggregate.
func (a SyncAggregate) ParticipationCount() int {
	n := 0
	for _, b := range a.Bits {
		if b {
			n++
		}
	}
	return n
}

// LightClientUpdate is one signed update offered to ingest_update: it
// extends trust from the committee of attested_period to next_period.
type LightClientUpdate struct {
	AttestedHeader          LightClientHeader
	NextSyncCommittee       SyncCommitteeKeys
	NextSyncCommitteeBranch [][32]byte
	FinalizedHeader         LightClientHeader
	FinalityBranch          [][32]byte
	SyncAggregate           SyncAggregate
	SignatureSlot           uint64
}

// TrustedBlock is one entry in a chain's bounded ring of finalized headers,
// generalizing the teacher's cache.Proof/Finalized bookkeeping.
type TrustedBlock struct {
	Root       [32]byte
	Period     uint64
	Slot       uint64
	ParentRoot [32]byte
}

// CommitteeRecord is a committed sync committee together with the
// participation bit-count of the update that installed it, needed by step 9
// of ingest_update to decide whether a stronger update may overwrite it.
type CommitteeRecord struct {
	Committee       SyncCommitteeKeys
	Participation   int
}
