package ssz

// Light-client update/bootstrap containers, per spec §4.5's "Update
// structure". Merkle-branch depths are fork-dependent: the next-sync-
// committee branch is depth 5 at Deneb and 6 at Electra; the finality
// branch is depth 6 at Deneb and 7 at Electra (validated against these same
// depths in synccommittee.IngestUpdate).

func NextSyncCommitteeBranchDepth(fork ForkID) int {
	if fork >= Electra {
		return 6
	}
	return 5
}

func FinalityBranchDepth(fork ForkID) int {
	if fork >= Electra {
		return 7
	}
	return 6
}

// ExecutionBranchDepth is the fixed depth of the execution-payload Merkle
// branch within a beacon block body, unchanged across Deneb/Electra.
const ExecutionBranchDepth = 4

func branchType(name string, depth int) *Descriptor {
	return Vector(name, ByteVector("node", 32), depth)
}

func lightClientHeaderType(fork ForkID, chainID ChainID) (*Descriptor, error) {
	execHeader, err := executionPayloadHeaderType(fork, chainID)
	if err != nil {
		return nil, err
	}
	return Container("LightClientHeader", []Field{
		{Name: "beacon", Type: beaconBlockHeaderType()},
		{Name: "execution", Type: execHeader},
		{Name: "execution_branch", Type: branchType("execution_branch", ExecutionBranchDepth)},
	}), nil
}

func lightClientUpdateType(fork ForkID, chainID ChainID) (*Descriptor, error) {
	header, err := lightClientHeaderType(fork, chainID)
	if err != nil {
		return nil, err
	}
	return Container("LightClientUpdate", []Field{
		{Name: "attested_header", Type: header},
		{Name: "next_sync_committee", Type: syncCommitteeType(chainID)},
		{Name: "next_sync_committee_branch", Type: branchType("next_sync_committee_branch", NextSyncCommitteeBranchDepth(fork))},
		{Name: "finalized_header", Type: header},
		{Name: "finality_branch", Type: branchType("finality_branch", FinalityBranchDepth(fork))},
		{Name: "sync_aggregate", Type: syncAggregateType(chainID)},
		{Name: "signature_slot", Type: UInt("signature_slot", 64)},
	}), nil
}

func lightClientBootstrapType(fork ForkID, chainID ChainID) (*Descriptor, error) {
	header, err := lightClientHeaderType(fork, chainID)
	if err != nil {
		return nil, err
	}
	return Container("LightClientBootstrap", []Field{
		{Name: "header", Type: header},
		{Name: "current_sync_committee", Type: syncCommitteeType(chainID)},
		{Name: "current_sync_committee_branch", Type: branchType("current_sync_committee_branch", NextSyncCommitteeBranchDepth(fork))},
	}), nil
}
