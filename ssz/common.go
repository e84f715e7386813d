package ssz

// Common containers shared by every fork, grounded on the beacon/state
// struct definitions (Checkpoint, Fork, Eth1Data, BeaconBlockHeader,
// Validator, Withdrawal, HistoricalSummary).

func checkpointType() *Descriptor {
	return Container("Checkpoint", []Field{
		{Name: "epoch", Type: UInt("epoch", 64)},
		{Name: "root", Type: ByteVector("root", 32)},
	})
}

func forkType() *Descriptor {
	return Container("Fork", []Field{
		{Name: "previous_version", Type: ByteVector("previous_version", 4)},
		{Name: "current_version", Type: ByteVector("current_version", 4)},
		{Name: "epoch", Type: UInt("epoch", 64)},
	})
}

func eth1DataType() *Descriptor {
	return Container("Eth1Data", []Field{
		{Name: "deposit_root", Type: ByteVector("deposit_root", 32)},
		{Name: "deposit_count", Type: UInt("deposit_count", 64)},
		{Name: "block_hash", Type: ByteVector("block_hash", 32)},
	})
}

func beaconBlockHeaderType() *Descriptor {
	return Container("BeaconBlockHeader", []Field{
		{Name: "slot", Type: UInt("slot", 64)},
		{Name: "proposer_index", Type: UInt("proposer_index", 64)},
		{Name: "parent_root", Type: ByteVector("parent_root", 32)},
		{Name: "state_root", Type: ByteVector("state_root", 32)},
		{Name: "body_root", Type: ByteVector("body_root", 32)},
	})
}

func signedBeaconBlockHeaderType() *Descriptor {
	return Container("SignedBeaconBlockHeader", []Field{
		{Name: "message", Type: beaconBlockHeaderType()},
		{Name: "signature", Type: ByteVector("signature", 96)},
	})
}

func validatorType() *Descriptor {
	return Container("Validator", []Field{
		{Name: "pubkey", Type: ByteVector("pubkey", 48)},
		{Name: "withdrawal_credentials", Type: ByteVector("withdrawal_credentials", 32)},
		{Name: "effective_balance", Type: UInt("effective_balance", 64)},
		{Name: "slashed", Type: Boolean("slashed")},
		{Name: "activation_eligibility_epoch", Type: UInt("activation_eligibility_epoch", 64)},
		{Name: "activation_epoch", Type: UInt("activation_epoch", 64)},
		{Name: "exit_epoch", Type: UInt("exit_epoch", 64)},
		{Name: "withdrawable_epoch", Type: UInt("withdrawable_epoch", 64)},
	})
}

func withdrawalType() *Descriptor {
	return Container("Withdrawal", []Field{
		{Name: "index", Type: UInt("index", 64)},
		{Name: "validator_index", Type: UInt("validator_index", 64)},
		{Name: "address", Type: ByteVector("address", 20)},
		{Name: "amount", Type: UInt("amount", 64)},
	})
}

func historicalSummaryType() *Descriptor {
	return Container("HistoricalSummary", []Field{
		{Name: "block_summary_root", Type: ByteVector("block_summary_root", 32)},
		{Name: "state_summary_root", Type: ByteVector("state_summary_root", 32)},
	})
}

func attestationDataType() *Descriptor {
	return Container("AttestationData", []Field{
		{Name: "slot", Type: UInt("slot", 64)},
		{Name: "index", Type: UInt("index", 64)},
		{Name: "beacon_block_root", Type: ByteVector("beacon_block_root", 32)},
		{Name: "source", Type: checkpointType()},
		{Name: "target", Type: checkpointType()},
	})
}

func voluntaryExitType() *Descriptor {
	return Container("VoluntaryExit", []Field{
		{Name: "epoch", Type: UInt("epoch", 64)},
		{Name: "validator_index", Type: UInt("validator_index", 64)},
	})
}

func signedVoluntaryExitType() *Descriptor {
	return Container("SignedVoluntaryExit", []Field{
		{Name: "message", Type: voluntaryExitType()},
		{Name: "signature", Type: ByteVector("signature", 96)},
	})
}

func depositDataType() *Descriptor {
	return Container("DepositData", []Field{
		{Name: "pubkey", Type: ByteVector("pubkey", 48)},
		{Name: "withdrawal_credentials", Type: ByteVector("withdrawal_credentials", 32)},
		{Name: "amount", Type: UInt("amount", 64)},
		{Name: "signature", Type: ByteVector("signature", 96)},
	})
}

func depositType() *Descriptor {
	return Container("Deposit", []Field{
		{Name: "proof", Type: Vector("proof", ByteVector("node", 32), 33)},
		{Name: "data", Type: depositDataType()},
	})
}

func blsToExecutionChangeType() *Descriptor {
	return Container("BLSToExecutionChange", []Field{
		{Name: "validator_index", Type: UInt("validator_index", 64)},
		{Name: "from_bls_pubkey", Type: ByteVector("from_bls_pubkey", 48)},
		{Name: "to_execution_address", Type: ByteVector("to_execution_address", 20)},
	})
}

func signedBLSToExecutionChangeType() *Descriptor {
	return Container("SignedBLSToExecutionChange", []Field{
		{Name: "message", Type: blsToExecutionChangeType()},
		{Name: "signature", Type: ByteVector("signature", 96)},
	})
}

func syncCommitteeType(chainID ChainID) *Descriptor {
	n := 512
	if chainID == ChainMinimal {
		n = 32
	}
	return Container("SyncCommittee", []Field{
		{Name: "pubkeys", Type: Vector("pubkeys", ByteVector("pubkey", 48), n)},
		{Name: "aggregate_pubkey", Type: ByteVector("aggregate_pubkey", 48)},
	})
}

func syncAggregateType(chainID ChainID) *Descriptor {
	n := 64
	if chainID == ChainMinimal {
		n = 4
	}
	return Container("SyncAggregate", []Field{
		{Name: "sync_committee_bits", Type: BitVector("sync_committee_bits", n*8)},
		{Name: "sync_committee_signature", Type: ByteVector("sync_committee_signature", 96)},
	})
}
