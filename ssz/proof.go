package ssz

// MerkleMultiProof is the wire shape of a multi-leaf Merkle proof: the
// gindices being witnessed and the gindex-sorted sibling hashes the merkle
// package's VerifyMultiProof consumes.
func merkleMultiProofType() *Descriptor {
	return Container("MerkleMultiProof", []Field{
		{Name: "gindices", Type: List("gindices", UInt("gindex", 64), 64)},
		{Name: "witnesses", Type: List("witnesses", ByteVector("node", 32), 256)},
	})
}

// syncAggregateProofType is the payload shared by SignatureProof and as the
// tail of HistoricProof/HeadersProof: the participation bits and BLS
// aggregate signature a caller supplies directly rather than re-deriving
// from a stored trust state.
func syncAggregateProofType(chainID ChainID) *Descriptor {
	return syncAggregateType(chainID)
}

// headerProofUnionType is the three-shape union from spec §4.5: a direct
// sync aggregate (SignatureProof), a historical_summaries inclusion plus
// signed state (HistoricProof), or a chain of successor headers terminating
// in a signed header (HeadersProof).
func headerProofUnionType(chainID ChainID) *Descriptor {
	signatureProof := Container("SignatureProof", []Field{
		{Name: "header", Type: beaconBlockHeaderType()},
		{Name: "bits", Type: syncAggregateProofType(chainID)},
	})
	historicProof := Container("HistoricProof", []Field{
		{Name: "proof", Type: merkleMultiProofType()},
		{Name: "header", Type: beaconBlockHeaderType()},
		{Name: "gindex", Type: UInt("gindex", 64)},
		{Name: "bits", Type: syncAggregateProofType(chainID)},
	})
	headersProof := Container("HeadersProof", []Field{
		{Name: "headers", Type: List("headers", beaconBlockHeaderType(), 128)},
		{Name: "header", Type: beaconBlockHeaderType()},
		{Name: "bits", Type: syncAggregateProofType(chainID)},
	})
	return Union("HeaderProof", []Field{
		{Name: "signature_proof", Type: signatureProof},
		{Name: "historic_proof", Type: historicProof},
		{Name: "headers_proof", Type: headersProof},
	})
}

// Per-RPC-method proof category containers, per spec §3/§6. Every category
// except sync carries a MerkleMultiProof (body_proof) against the beacon
// block body; receipt/logs/account/state additionally carry an opaque
// patricia-trie branch handed to verify.PatriciaVerifier, and call wraps an
// account proof plus storage branches. The sync category is the bare
// header-proof union.

// Each per-method proof category below carries its own header_proof: the
// header-proof union authenticating the beacon-block header that
// body_proof/patricia_branch are anchored against. Spec §4.5 frames header
// proofs as "consumed by request-level verifiers" producing a verified
// header identity; every method-specific proof needs one, since the
// envelope's single top-level `proof` union field selects exactly one
// per-method shape per request rather than a separate shared header slot.

// claimed_root is the execution-layer root (receipts_root or state_root)
// that body_proof anchors into the attested body and patricia_branch is
// checked against; carrying it explicitly lets the multi-proof's leaf value
// be known without re-deriving it from the patricia branch itself.

func receiptProofType(chainID ChainID) *Descriptor {
	return Container("ReceiptProof", []Field{
		{Name: "header_proof", Type: headerProofUnionType(chainID)},
		{Name: "body_proof", Type: merkleMultiProofType()},
		{Name: "claimed_root", Type: ByteVector("claimed_root", 32)},
		{Name: "patricia_branch", Type: List("patricia_branch", BytesType("node", 532), 64)},
		{Name: "receipt_index", Type: UInt("receipt_index", 64)},
	})
}

func logsProofType(chainID ChainID) *Descriptor {
	return Container("LogsProof", []Field{
		{Name: "header_proof", Type: headerProofUnionType(chainID)},
		{Name: "body_proof", Type: merkleMultiProofType()},
		{Name: "claimed_root", Type: ByteVector("claimed_root", 32)},
		{Name: "patricia_branch", Type: List("patricia_branch", BytesType("node", 532), 64)},
		{Name: "log_index", Type: UInt("log_index", 64)},
	})
}

func accountProofType(chainID ChainID) *Descriptor {
	return Container("AccountProof", []Field{
		{Name: "header_proof", Type: headerProofUnionType(chainID)},
		{Name: "body_proof", Type: merkleMultiProofType()},
		{Name: "claimed_root", Type: ByteVector("claimed_root", 32)},
		{Name: "patricia_branch", Type: List("patricia_branch", BytesType("node", 532), 64)},
		{Name: "address", Type: ByteVector("address", 20)},
	})
}

func callProofType(chainID ChainID) *Descriptor {
	return Container("CallProof", []Field{
		{Name: "account_proof", Type: accountProofType(chainID)},
		{Name: "storage_branches", Type: List("storage_branches", BytesType("node", 532), 256)},
	})
}

func syncProofType(chainID ChainID) *Descriptor {
	return headerProofUnionType(chainID)
}

func blockProofType(chainID ChainID) *Descriptor {
	return Container("BlockProof", []Field{
		{Name: "header_proof", Type: headerProofUnionType(chainID)},
		{Name: "body_proof", Type: merkleMultiProofType()},
	})
}

func blockNumberProofType(chainID ChainID) *Descriptor {
	return Container("BlockNumberProof", []Field{
		{Name: "header_proof", Type: headerProofUnionType(chainID)},
		{Name: "body_proof", Type: merkleMultiProofType()},
		{Name: "gindex", Type: UInt("gindex", 64)},
	})
}

// stateProofType covers both eth_getCode (address only) and
// eth_getStorageAt (address plus slot); slot is the zero value when the
// request is for code rather than a storage slot.
func stateProofType(chainID ChainID) *Descriptor {
	return Container("StateProof", []Field{
		{Name: "header_proof", Type: headerProofUnionType(chainID)},
		{Name: "body_proof", Type: merkleMultiProofType()},
		{Name: "claimed_root", Type: ByteVector("claimed_root", 32)},
		{Name: "patricia_branch", Type: List("patricia_branch", BytesType("node", 532), 64)},
		{Name: "address", Type: ByteVector("address", 20)},
		{Name: "slot", Type: ByteVector("slot", 32)},
	})
}

func blockHashProofType(chainID ChainID) *Descriptor {
	return Container("BlockHashProof", []Field{
		{Name: "header_proof", Type: headerProofUnionType(chainID)},
		{Name: "body_proof", Type: merkleMultiProofType()},
		{Name: "gindex", Type: UInt("gindex", 64)},
	})
}

// proofUnionType is the "proof" field of the request envelope: a tagged
// union selecting one of the per-method proof categories in §3.
func proofUnionType(chainID ChainID) *Descriptor {
	return Union("Proof", []Field{
		{Name: "transaction", Type: receiptlikeTransactionProofType(chainID)},
		{Name: "receipt", Type: receiptProofType(chainID)},
		{Name: "logs", Type: logsProofType(chainID)},
		{Name: "account", Type: accountProofType(chainID)},
		{Name: "call", Type: callProofType(chainID)},
		{Name: "sync", Type: syncProofType(chainID)},
		{Name: "block", Type: blockProofType(chainID)},
		{Name: "block_number", Type: blockNumberProofType(chainID)},
		{Name: "state", Type: stateProofType(chainID)},
		{Name: "block_hash", Type: blockHashProofType(chainID)},
	})
}

// receiptlikeTransactionProofType builds the TransactionProof container,
// pairing a header-proof union with the multi-proof locating the
// transaction inside the attested block body.
func receiptlikeTransactionProofType(chainID ChainID) *Descriptor {
	return Container("TransactionProof", []Field{
		{Name: "header_proof", Type: headerProofUnionType(chainID)},
		{Name: "body_proof", Type: merkleMultiProofType()},
		{Name: "transaction_index", Type: UInt("transaction_index", 64)},
	})
}

// dataUnionType is the "data" field of the request envelope: the untrusted
// RPC response payload being verified. Its alternatives do not line up with
// proofUnionType's by position or name; verify.Table pairs each method's
// proof and data alternatives.
func dataUnionType() *Descriptor {
	return Union("Data", []Field{
		{Name: "balance", Type: UInt("balance", 256)},
		{Name: "transaction", Type: BytesType("transaction", 1073741824)},
		{Name: "receipt", Type: BytesType("receipt", 1073741824)},
		{Name: "logs", Type: List("logs", BytesType("log", 1073741824), 4096)},
		{Name: "call_result", Type: BytesType("call_result", 1073741824)},
		{Name: "account_proof_data", Type: BytesType("account_proof_data", 1073741824)},
		{Name: "block", Type: BytesType("block", 1073741824)},
		{Name: "block_number", Type: UInt("block_number", 64)},
		{Name: "code", Type: BytesType("code", 24576)},
		{Name: "storage_value", Type: ByteVector("storage_value", 32)},
	})
}

func requestEnvelopeType(fork ForkID, chainID ChainID) (*Descriptor, error) {
	updateList, err := TypeFor(CategoryLightClientUpdateList, fork, chainID)
	if err != nil {
		return nil, err
	}
	return Container("RequestEnvelope", []Field{
		{Name: "version", Type: ByteVector("version", 4)},
		{Name: "sync_data", Type: updateList},
		{Name: "proof", Type: proofUnionType(chainID)},
		{Name: "data", Type: dataUnionType()},
	}), nil
}
