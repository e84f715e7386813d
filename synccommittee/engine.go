package synccommittee

import (
	"errors"
	"fmt"

	"github.com/ethlightclient/verifier/blssig"
	"github.com/ethlightclient/verifier/chainspec"
	"github.com/ethlightclient/verifier/merkle"
	"github.com/ethlightclient/verifier/ssz"
)

// Sentinel errors mirroring spec §7's taxonomy entries the sync engine can
// raise; the verify package wraps these into its own typed error variants.
var (
	ErrNoTrustedCommittee        = errors.New("synccommittee: no trusted committee for period")
	ErrInsufficientParticipation = errors.New("synccommittee: fewer than 2/3 of sync committee bits set")
	ErrSignatureInvalid          = errors.New("synccommittee: aggregate signature verification failed")
)

// TrustState is the append-only, per-chain structure the sync engine reads
// and advances: a bounded ring of trusted blocks and a bounded window of
// committed sync committees by period. Generalizes the teacher's
// BeaconCache (state_src.go): FinalizedCheckpointsLimit's pruned-ring idiom
// becomes blockRingCapacity here. GetClosestCheckpoint has no counterpart:
// HighestTrustedSlot is the only slot query TrustState offers.
type TrustState struct {
	blockRingCapacity int
	committeeWindow   int

	blocks     []TrustedBlock // ascending by slot, length bounded by blockRingCapacity
	committees map[uint64]CommitteeRecord
}

// NewTrustState creates an empty trust state with the given bounds on the
// trusted-block ring and the committee window (oldest periods are pruned
// once more than committeeWindow are held).
func NewTrustState(blockRingCapacity, committeeWindow int) *TrustState {
	return &TrustState{
		blockRingCapacity: blockRingCapacity,
		committeeWindow:   committeeWindow,
		committees:        make(map[uint64]CommitteeRecord),
	}
}

// Bootstrap seeds the trust state from a signed checkpoint: a beacon-block
// header, its current sync committee, and a Merkle proof that the
// committee's hash-tree-root sits at the current-sync-committee gindex
// within the header's state root. Per spec §4.5, accepts iff the proof
// verifies.
func Bootstrap(spec *chainspec.Spec, header BeaconBlockHeader, committee SyncCommitteeKeys, branch [][32]byte) (*TrustState, error) {
	ts := NewTrustState(64, 8)

	fork := spec.ForkAtSlot(header.Slot)
	g, err := currentSyncCommitteeGIndex(fork, spec.ChainID)
	if err != nil {
		return nil, err
	}

	committeeRoot, err := hashSyncCommittee(committee, spec.ChainID)
	if err != nil {
		return nil, err
	}

	if !merkle.VerifySingleProof(committeeRoot, g, branch, header.StateRoot) {
		return nil, fmt.Errorf("%w: gindex %d", merkle.ErrProofInvalid, g)
	}

	period := spec.PeriodAtSlot(header.Slot)
	ts.committees[period] = CommitteeRecord{Committee: committee, Participation: 512}
	headerRoot, err := HashBeaconBlockHeader(header)
	if err != nil {
		return nil, err
	}
	ts.blocks = append(ts.blocks, TrustedBlock{Root: headerRoot, Period: period, Slot: header.Slot, ParentRoot: header.ParentRoot})
	return ts, nil
}

// CommitteeForPeriod reports the committee trusted for the given period, if
// any.
func (ts *TrustState) CommitteeForPeriod(period uint64) (CommitteeRecord, bool) {
	rec, ok := ts.committees[period]
	return rec, ok
}

// HighestTrustedSlot returns the slot of the most recently recorded trusted
// block, or 0 if none has been recorded.
func (ts *TrustState) HighestTrustedSlot() uint64 {
	if len(ts.blocks) == 0 {
		return 0
	}
	return ts.blocks[len(ts.blocks)-1].Slot
}

// IngestUpdate validates one signed light-client update against ts and, on
// success, conditionally advances it by one sync period, implementing the
// ten-step sequence from spec §4.5 in order; every step is required.
func IngestUpdate(spec *chainspec.Spec, ts *TrustState, update LightClientUpdate) error {
	// Step 1: compute attested_period and next_period.
	attestedPeriod := spec.PeriodAtSlot(update.SignatureSlot)
	nextPeriod := attestedPeriod + 1

	// Step 2: the predecessor committee must already be trusted.
	committeeRec, ok := ts.CommitteeForPeriod(attestedPeriod)
	if !ok {
		return fmt.Errorf("%w: period %d", ErrNoTrustedCommittee, attestedPeriod)
	}

	attestedFork := spec.ForkAtSlot(update.AttestedHeader.Beacon.Slot)

	// Step 3: next sync committee branch against attested state root.
	nextCommitteeGIndex, err := nextSyncCommitteeGIndex(attestedFork, spec.ChainID)
	if err != nil {
		return err
	}
	nextCommitteeRoot, err := hashSyncCommittee(update.NextSyncCommittee, spec.ChainID)
	if err != nil {
		return err
	}
	if !merkle.VerifySingleProof(nextCommitteeRoot, nextCommitteeGIndex, update.NextSyncCommitteeBranch, update.AttestedHeader.Beacon.StateRoot) {
		return fmt.Errorf("%w: gindex %d", merkle.ErrProofInvalid, nextCommitteeGIndex)
	}

	// Step 4: finalized header branch against attested state root.
	finalityGIndex, err := finalizedRootGIndex(attestedFork, spec.ChainID)
	if err != nil {
		return err
	}
	finalizedHeaderRoot, err := HashBeaconBlockHeader(update.FinalizedHeader.Beacon)
	if err != nil {
		return err
	}
	if !merkle.VerifySingleProof(finalizedHeaderRoot, finalityGIndex, update.FinalityBranch, update.AttestedHeader.Beacon.StateRoot) {
		return fmt.Errorf("%w: gindex %d", merkle.ErrProofInvalid, finalityGIndex)
	}

	// Step 5: execution payload branch against attested body root.
	execGIndex, err := executionPayloadGIndex(attestedFork, spec.ChainID)
	if err != nil {
		return err
	}
	if !merkle.VerifySingleProof(update.AttestedHeader.ExecutionRoot, execGIndex, update.AttestedHeader.ExecutionBranch, update.AttestedHeader.Beacon.BodyRoot) {
		return fmt.Errorf("%w: gindex %d", merkle.ErrProofInvalid, execGIndex)
	}

	// Step 6: participation threshold.
	participation := update.SyncAggregate.ParticipationCount()
	total := len(committeeRec.Committee.Pubkeys)
	if total == 0 {
		total = 512
	}
	if !hasSufficientParticipation(participation, total) {
		return fmt.Errorf("%w: %d bits set", ErrInsufficientParticipation, participation)
	}

	// Step 7: signing domain and signing root.
	forkVersion, err := spec.ForkVersion(attestedFork)
	if err != nil {
		return err
	}
	domain := ComputeDomain(forkVersion, spec.GenesisValidatorsRoot)
	attestedHeaderRoot, err := HashBeaconBlockHeader(update.AttestedHeader.Beacon)
	if err != nil {
		return err
	}
	signingRoot := ComputeSigningRoot(attestedHeaderRoot, domain)

	// Step 8: aggregate participant keys and verify the BLS signature.
	if err := VerifyAggregateSignature(committeeRec.Committee, update.SyncAggregate, signingRoot[:]); err != nil {
		return err
	}

	// Step 9: conditionally install the committee for next_period.
	existing, hasExisting := ts.committees[nextPeriod]
	if !hasExisting || participation > existing.Participation {
		ts.committees[nextPeriod] = CommitteeRecord{Committee: update.NextSyncCommittee, Participation: participation}
	}
	ts.pruneCommittees()

	// Step 10: record the finalized header if its slot advances the ring.
	if update.FinalizedHeader.Beacon.Slot > ts.HighestTrustedSlot() {
		ts.blocks = append(ts.blocks, TrustedBlock{
			Root:       finalizedHeaderRoot,
			Period:     spec.PeriodAtSlot(update.FinalizedHeader.Beacon.Slot),
			Slot:       update.FinalizedHeader.Beacon.Slot,
			ParentRoot: update.FinalizedHeader.Beacon.ParentRoot,
		})
		ts.pruneBlocks()
	}

	return nil
}

// hasSufficientParticipation requires at least two-thirds participation
// (>= 342 of 512 on mainnet), per spec §4.5 step 6 / §8 scenario 6.
func hasSufficientParticipation(bitsSet, total int) bool {
	return bitsSet*3 >= total*2
}

func (ts *TrustState) pruneBlocks() {
	if len(ts.blocks) <= ts.blockRingCapacity {
		return
	}
	ts.blocks = ts.blocks[len(ts.blocks)-ts.blockRingCapacity:]
}

func (ts *TrustState) pruneCommittees() {
	if len(ts.committees) <= ts.committeeWindow {
		return
	}
	lowest := uint64(0)
	first := true
	for p := range ts.committees {
		if first || p < lowest {
			lowest = p
			first = false
		}
	}
	delete(ts.committees, lowest)
}

func VerifyAggregateSignature(committee SyncCommitteeKeys, agg SyncAggregate, msg []byte) error {
	keys := make([]blssig.PublicKey, len(committee.Pubkeys))
	for i, raw := range committee.Pubkeys {
		k, err := blssig.ParsePublicKey(raw)
		if err != nil {
			return err
		}
		keys[i] = k
	}
	aggregateKey, err := blssig.AggregatePublicKeys(keys, agg.Bits)
	if err != nil {
		return err
	}
	sig, err := blssig.ParseSignature(agg.Signature)
	if err != nil {
		return err
	}
	if !blssig.Verify(aggregateKey, msg, sig) {
		return ErrSignatureInvalid
	}
	return nil
}

// HashBeaconBlockHeader computes the hash-tree-root of a BeaconBlockHeader by
// building its five-field SSZ descriptor and value and passing them to the
// generic merkle.HashTreeRoot.
func HashBeaconBlockHeader(h BeaconBlockHeader) ([32]byte, error) {
	d := beaconBlockHeaderDescriptor()
	v, err := beaconBlockHeaderValue(h)
	if err != nil {
		return [32]byte{}, err
	}
	return merkle.HashTreeRoot(d, v)
}

func hashSyncCommittee(committee SyncCommitteeKeys, chainID chainspec.ChainID) ([32]byte, error) {
	d, err := syncCommitteeDescriptor(chainID)
	if err != nil {
		return [32]byte{}, err
	}
	v, err := syncCommitteeValue(d, committee)
	if err != nil {
		return [32]byte{}, err
	}
	return merkle.HashTreeRoot(d, v)
}

func currentSyncCommitteeGIndex(fork chainspec.ForkID, chainID chainspec.ChainID) (merkle.GIndex, error) {
	return stateGIndex(fork, chainID, "current_sync_committee")
}

func nextSyncCommitteeGIndex(fork chainspec.ForkID, chainID chainspec.ChainID) (merkle.GIndex, error) {
	return stateGIndex(fork, chainID, "next_sync_committee")
}

func finalizedRootGIndex(fork chainspec.ForkID, chainID chainspec.ChainID) (merkle.GIndex, error) {
	d, err := ssz.TypeFor(ssz.CategoryBeaconState, fork, chainID)
	if err != nil {
		return 0, err
	}
	return merkle.GIndexOf(d, "finalized_checkpoint", "root")
}

func stateGIndex(fork chainspec.ForkID, chainID chainspec.ChainID, field string) (merkle.GIndex, error) {
	d, err := ssz.TypeFor(ssz.CategoryBeaconState, fork, chainID)
	if err != nil {
		return 0, err
	}
	return merkle.GIndexOf(d, field)
}

func executionPayloadGIndex(fork chainspec.ForkID, chainID chainspec.ChainID) (merkle.GIndex, error) {
	d, err := ssz.TypeFor(ssz.CategoryBeaconBlockBody, fork, chainID)
	if err != nil {
		return 0, err
	}
	return merkle.GIndexOf(d, "execution_payload")
}
