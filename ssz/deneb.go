package ssz

// Deneb-fork containers, grounded on beacon_deneb.go's ExecutionPayloadDeneb/
// ExecutionPayloadHeaderDeneb/BeaconBlockBodyDeneb{Mainnet,Minimal} shapes.

func executionPayloadType(chainID ChainID) *Descriptor {
	return Container("ExecutionPayload", []Field{
		{Name: "parent_hash", Type: ByteVector("parent_hash", 32)},
		{Name: "fee_recipient", Type: ByteVector("fee_recipient", 20)},
		{Name: "state_root", Type: ByteVector("state_root", 32)},
		{Name: "receipts_root", Type: ByteVector("receipts_root", 32)},
		{Name: "logs_bloom", Type: ByteVector("logs_bloom", 256)},
		{Name: "prev_randao", Type: ByteVector("prev_randao", 32)},
		{Name: "block_number", Type: UInt("block_number", 64)},
		{Name: "gas_limit", Type: UInt("gas_limit", 64)},
		{Name: "gas_used", Type: UInt("gas_used", 64)},
		{Name: "timestamp", Type: UInt("timestamp", 64)},
		{Name: "extra_data", Type: BytesType("extra_data", 32)},
		{Name: "base_fee_per_gas", Type: ByteVector("base_fee_per_gas", 32)},
		{Name: "block_hash", Type: ByteVector("block_hash", 32)},
		{Name: "transactions", Type: transactionsType()},
		{Name: "withdrawals", Type: List("withdrawals", withdrawalType(), withdrawalsLimit(chainID))},
		{Name: "blob_gas_used", Type: UInt("blob_gas_used", 64)},
		{Name: "excess_blob_gas", Type: UInt("excess_blob_gas", 64)},
	})
}

func executionPayloadHeaderType(fork ForkID, chainID ChainID) (*Descriptor, error) {
	fields := []Field{
		{Name: "parent_hash", Type: ByteVector("parent_hash", 32)},
		{Name: "fee_recipient", Type: ByteVector("fee_recipient", 20)},
		{Name: "state_root", Type: ByteVector("state_root", 32)},
		{Name: "receipts_root", Type: ByteVector("receipts_root", 32)},
		{Name: "logs_bloom", Type: ByteVector("logs_bloom", 256)},
		{Name: "prev_randao", Type: ByteVector("prev_randao", 32)},
		{Name: "block_number", Type: UInt("block_number", 64)},
		{Name: "gas_limit", Type: UInt("gas_limit", 64)},
		{Name: "gas_used", Type: UInt("gas_used", 64)},
		{Name: "timestamp", Type: UInt("timestamp", 64)},
		{Name: "extra_data", Type: BytesType("extra_data", 32)},
		{Name: "base_fee_per_gas", Type: ByteVector("base_fee_per_gas", 32)},
		{Name: "block_hash", Type: ByteVector("block_hash", 32)},
		{Name: "transactions_root", Type: ByteVector("transactions_root", 32)},
		{Name: "withdrawals_root", Type: ByteVector("withdrawals_root", 32)},
	}
	if fork >= Deneb {
		fields = append(fields,
			Field{Name: "blob_gas_used", Type: UInt("blob_gas_used", 64)},
			Field{Name: "excess_blob_gas", Type: UInt("excess_blob_gas", 64)},
		)
	}
	return Container("ExecutionPayloadHeader", fields), nil
}

func transactionsType() *Descriptor {
	return List("transactions", BytesType("transaction", 1073741824), 1048576)
}

func proposerSlashingType() *Descriptor {
	return Container("ProposerSlashing", []Field{
		{Name: "signed_header_1", Type: signedBeaconBlockHeaderType()},
		{Name: "signed_header_2", Type: signedBeaconBlockHeaderType()},
	})
}

func attesterSlashingType(fork ForkID) *Descriptor {
	return Container("AttesterSlashing", []Field{
		{Name: "attestation_1", Type: indexedAttestationType(fork)},
		{Name: "attestation_2", Type: indexedAttestationType(fork)},
	})
}

func indexedAttestationType(fork ForkID) *Descriptor {
	limit := 2048
	width := 64
	if fork >= Electra {
		limit = 131072
	}
	return Container("IndexedAttestation", []Field{
		{Name: "attesting_indices", Type: List("attesting_indices", UInt("index", width), limit)},
		{Name: "data", Type: attestationDataType()},
		{Name: "signature", Type: ByteVector("signature", 96)},
	})
}

func attestationType(fork ForkID) *Descriptor {
	fields := []Field{
		{Name: "aggregation_bits", Type: BitListType("aggregation_bits", 2048)},
		{Name: "data", Type: attestationDataType()},
		{Name: "signature", Type: ByteVector("signature", 96)},
	}
	if fork >= Electra {
		fields = append(fields, Field{Name: "committee_bits", Type: BitVector("committee_bits", 64)})
	}
	return Container("Attestation", fields)
}

func beaconBlockBodyType(fork ForkID, chainID ChainID) (*Descriptor, error) {
	attesterSlashingsLimit, attestationsLimit := 2, 128
	if fork >= Electra {
		attesterSlashingsLimit, attestationsLimit = 1, 8
	}
	fields := []Field{
		{Name: "randao_reveal", Type: ByteVector("randao_reveal", 96)},
		{Name: "eth1_data", Type: eth1DataType()},
		{Name: "graffiti", Type: ByteVector("graffiti", 32)},
		{Name: "proposer_slashings", Type: List("proposer_slashings", proposerSlashingType(), 16)},
		{Name: "attester_slashings", Type: List("attester_slashings", attesterSlashingType(fork), attesterSlashingsLimit)},
		{Name: "attestations", Type: List("attestations", attestationType(fork), attestationsLimit)},
		{Name: "deposits", Type: List("deposits", depositType(), 16)},
		{Name: "voluntary_exits", Type: List("voluntary_exits", signedVoluntaryExitType(), 16)},
		{Name: "sync_aggregate", Type: syncAggregateType(chainID)},
		{Name: "execution_payload", Type: executionPayloadType(chainID)},
		{Name: "bls_to_execution_changes", Type: List("bls_to_execution_changes", signedBLSToExecutionChangeType(), 16)},
	}
	if fork >= Deneb {
		fields = append(fields, Field{Name: "blob_kzg_commitments", Type: List("blob_kzg_commitments", ByteVector("commitment", 48), 4096)})
	}
	if fork >= Electra {
		fields = append(fields, Field{Name: "execution_requests", Type: executionRequestsType()})
	}
	return Container("BeaconBlockBody", fields), nil
}

func beaconBlockType(fork ForkID, chainID ChainID) (*Descriptor, error) {
	body, err := beaconBlockBodyType(fork, chainID)
	if err != nil {
		return nil, err
	}
	return Container("BeaconBlock", []Field{
		{Name: "slot", Type: UInt("slot", 64)},
		{Name: "proposer_index", Type: UInt("proposer_index", 64)},
		{Name: "parent_root", Type: ByteVector("parent_root", 32)},
		{Name: "state_root", Type: ByteVector("state_root", 32)},
		{Name: "body", Type: body},
	}), nil
}

func signedBeaconBlockType(fork ForkID, chainID ChainID) (*Descriptor, error) {
	block, err := beaconBlockType(fork, chainID)
	if err != nil {
		return nil, err
	}
	return Container("SignedBeaconBlock", []Field{
		{Name: "message", Type: block},
		{Name: "signature", Type: ByteVector("signature", 96)},
	}), nil
}
