package verify

// Method names the supported JSON-RPC methods per spec §6, each mapping to
// the proof/data union alternative name it is verified and decoded through.
type Method string

const (
	MethodGetBalance            Method = "eth_getBalance"
	MethodGetTransactionByHash  Method = "eth_getTransactionByHash"
	MethodGetTransactionReceipt Method = "eth_getTransactionReceipt"
	MethodGetLogs               Method = "eth_getLogs"
	MethodCall                  Method = "eth_call"
	MethodGetProof               Method = "eth_getProof"
	// MethodGetBlockByNumber's "block" proof authenticates only the header
	// (block_hash) against the trusted beacon state; the RLP-encoded
	// data.block bytes themselves are not re-hashed against anything here
	// (see leafproof.go's verifyFieldProof, nil-leaf case) and the caller
	// must re-derive and compare the block hash externally before trusting
	// data.block's contents.
	MethodGetBlockByNumber       Method = "eth_getBlockByNumber"
	MethodBlockNumber            Method = "eth_blockNumber"
	MethodGetCode                Method = "eth_getCode"
	MethodGetStorageAt           Method = "eth_getStorageAt"
)

// methodMapping names the proof-union and data-union alternatives a method
// is carried in, per spec §3/§6's per-RPC-method mapping.
type methodMapping struct {
	ProofAlternative string
	DataAlternative  string
}

// Table is the registry mapping each supported RPC method to its proof and
// data categories, built at package init time and dispatched by method name
// (spec §4.6: "each method handler is registered at build time").
var Table = map[Method]methodMapping{
	MethodGetBalance:            {ProofAlternative: "account", DataAlternative: "balance"},
	MethodGetTransactionByHash:  {ProofAlternative: "transaction", DataAlternative: "transaction"},
	MethodGetTransactionReceipt: {ProofAlternative: "receipt", DataAlternative: "receipt"},
	MethodGetLogs:               {ProofAlternative: "logs", DataAlternative: "logs"},
	MethodCall:                  {ProofAlternative: "call", DataAlternative: "call_result"},
	MethodGetProof:               {ProofAlternative: "account", DataAlternative: "account_proof_data"},
	MethodGetBlockByNumber:       {ProofAlternative: "block", DataAlternative: "block"},
	MethodBlockNumber:            {ProofAlternative: "block_number", DataAlternative: "block_number"},
	MethodGetCode:                {ProofAlternative: "state", DataAlternative: "code"},
	MethodGetStorageAt:           {ProofAlternative: "state", DataAlternative: "storage_value"},
}

// Lookup reports the proof/data alternative names registered for method, and
// whether the method is supported at all.
func Lookup(method Method) (proofAlt, dataAlt string, ok bool) {
	m, ok := Table[method]
	if !ok {
		return "", "", false
	}
	return m.ProofAlternative, m.DataAlternative, true
}
