package ssz

// Electra-fork additions, supplementing the teacher (which only reaches
// Deneb): the new execution-requests container introduced alongside the
// Electra attestation/slashing limit changes and committee-bits field
// already threaded into beaconBlockBodyType/attestationType/
// indexedAttestationType in deneb.go.

func depositRequestType() *Descriptor {
	return Container("DepositRequest", []Field{
		{Name: "pubkey", Type: ByteVector("pubkey", 48)},
		{Name: "withdrawal_credentials", Type: ByteVector("withdrawal_credentials", 32)},
		{Name: "amount", Type: UInt("amount", 64)},
		{Name: "signature", Type: ByteVector("signature", 96)},
		{Name: "index", Type: UInt("index", 64)},
	})
}

func withdrawalRequestType() *Descriptor {
	return Container("WithdrawalRequest", []Field{
		{Name: "source_address", Type: ByteVector("source_address", 20)},
		{Name: "validator_pubkey", Type: ByteVector("validator_pubkey", 48)},
		{Name: "amount", Type: UInt("amount", 64)},
	})
}

func consolidationRequestType() *Descriptor {
	return Container("ConsolidationRequest", []Field{
		{Name: "source_address", Type: ByteVector("source_address", 20)},
		{Name: "source_pubkey", Type: ByteVector("source_pubkey", 48)},
		{Name: "target_pubkey", Type: ByteVector("target_pubkey", 48)},
	})
}

func executionRequestsType() *Descriptor {
	return Container("ExecutionRequests", []Field{
		{Name: "deposits", Type: List("deposits", depositRequestType(), 8192)},
		{Name: "withdrawals", Type: List("withdrawals", withdrawalRequestType(), 16)},
		{Name: "consolidations", Type: List("consolidations", consolidationRequestType(), 2)},
	})
}
