package ssz

// beaconStateType builds the canonical BeaconState container in its stable
// field order (unchanged since Altair through the fields this verifier
// needs gindices into), extended with the Electra pending-operations queues
// appended at the end. The verifier never decodes a full state value — only
// GIndexOf against this descriptor, to locate sync-committee, finality, and
// historical-summaries proofs relative to a header's state_root — so large
// validator-registry-scale lists are declared with their real capacity but
// never materialized.
func beaconStateType(fork ForkID, chainID ChainID) (*Descriptor, error) {
	executionPayloadHeader, err := executionPayloadHeaderType(fork, chainID)
	if err != nil {
		return nil, err
	}

	fields := []Field{
		{Name: "genesis_time", Type: UInt("genesis_time", 64)},
		{Name: "genesis_validators_root", Type: ByteVector("genesis_validators_root", 32)},
		{Name: "slot", Type: UInt("slot", 64)},
		{Name: "fork", Type: forkType()},
		{Name: "latest_block_header", Type: beaconBlockHeaderType()},
		{Name: "block_roots", Type: Vector("block_roots", ByteVector("root", 32), blockRootsLength(chainID))},
		{Name: "state_roots", Type: Vector("state_roots", ByteVector("root", 32), blockRootsLength(chainID))},
		{Name: "historical_roots", Type: List("historical_roots", ByteVector("root", 32), 16777216)},
		{Name: "eth1_data", Type: eth1DataType()},
		{Name: "eth1_data_votes", Type: List("eth1_data_votes", eth1DataType(), 2048)},
		{Name: "eth1_deposit_index", Type: UInt("eth1_deposit_index", 64)},
		{Name: "validators", Type: List("validators", validatorType(), 1099511627776)},
		{Name: "balances", Type: List("balances", UInt("balance", 64), 1099511627776)},
		{Name: "randao_mixes", Type: Vector("randao_mixes", ByteVector("mix", 32), randaoMixesLength(chainID))},
		{Name: "slashings", Type: Vector("slashings", UInt("slashing", 64), slashingsVectorLength(chainID))},
		{Name: "previous_epoch_participation", Type: List("previous_epoch_participation", UInt("participation", 8), 1099511627776)},
		{Name: "current_epoch_participation", Type: List("current_epoch_participation", UInt("participation", 8), 1099511627776)},
		{Name: "justification_bits", Type: BitVector("justification_bits", 4)},
		{Name: "previous_justified_checkpoint", Type: checkpointType()},
		{Name: "current_justified_checkpoint", Type: checkpointType()},
		{Name: "finalized_checkpoint", Type: checkpointType()},
		{Name: "inactivity_scores", Type: List("inactivity_scores", UInt("score", 64), 1099511627776)},
		{Name: "current_sync_committee", Type: syncCommitteeType(chainID)},
		{Name: "next_sync_committee", Type: syncCommitteeType(chainID)},
		{Name: "latest_execution_payload_header", Type: executionPayloadHeader},
		{Name: "next_withdrawal_index", Type: UInt("next_withdrawal_index", 64)},
		{Name: "next_withdrawal_validator_index", Type: UInt("next_withdrawal_validator_index", 64)},
		{Name: "historical_summaries", Type: List("historical_summaries", historicalSummaryType(), 16777216)},
	}

	if fork >= Electra {
		fields = append(fields,
			Field{Name: "deposit_requests_start_index", Type: UInt("deposit_requests_start_index", 64)},
			Field{Name: "deposit_balance_to_consume", Type: UInt("deposit_balance_to_consume", 64)},
			Field{Name: "exit_balance_to_consume", Type: UInt("exit_balance_to_consume", 64)},
			Field{Name: "earliest_exit_epoch", Type: UInt("earliest_exit_epoch", 64)},
			Field{Name: "consolidation_balance_to_consume", Type: UInt("consolidation_balance_to_consume", 64)},
			Field{Name: "earliest_consolidation_epoch", Type: UInt("earliest_consolidation_epoch", 64)},
			Field{Name: "pending_deposits", Type: List("pending_deposits", pendingDepositType(), 134217728)},
			Field{Name: "pending_partial_withdrawals", Type: List("pending_partial_withdrawals", pendingPartialWithdrawalType(), 134217728)},
			Field{Name: "pending_consolidations", Type: List("pending_consolidations", pendingConsolidationType(), 262144)},
		)
	}

	return Container("BeaconState", fields), nil
}

func randaoMixesLength(chainID ChainID) int {
	if chainID == ChainMinimal {
		return 64
	}
	return 65536
}

func slashingsVectorLength(chainID ChainID) int {
	if chainID == ChainMinimal {
		return 64
	}
	return 8192
}

func pendingDepositType() *Descriptor {
	return Container("PendingDeposit", []Field{
		{Name: "pubkey", Type: ByteVector("pubkey", 48)},
		{Name: "withdrawal_credentials", Type: ByteVector("withdrawal_credentials", 32)},
		{Name: "amount", Type: UInt("amount", 64)},
		{Name: "signature", Type: ByteVector("signature", 96)},
		{Name: "slot", Type: UInt("slot", 64)},
	})
}

func pendingPartialWithdrawalType() *Descriptor {
	return Container("PendingPartialWithdrawal", []Field{
		{Name: "validator_index", Type: UInt("validator_index", 64)},
		{Name: "amount", Type: UInt("amount", 64)},
		{Name: "withdrawable_epoch", Type: UInt("withdrawable_epoch", 64)},
	})
}

func pendingConsolidationType() *Descriptor {
	return Container("PendingConsolidation", []Field{
		{Name: "source_index", Type: UInt("source_index", 64)},
		{Name: "target_index", Type: UInt("target_index", 64)},
	})
}
