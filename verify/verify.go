package verify

import (
	"errors"

	"github.com/ethlightclient/verifier/chainspec"
	"github.com/ethlightclient/verifier/merkle"
	"github.com/ethlightclient/verifier/ssz"
	"github.com/ethlightclient/verifier/synccommittee"
)

// FetchFunc is the callback the verifier invokes for data it cannot produce
// locally, per spec §6's Request-fetch interface. Cache-key derivation is
// the caller's responsibility; Verify itself never calls it directly, since
// every proof shape this package evaluates is self-contained, but it is
// threaded through so a future HistoricProof extension needing an
// out-of-band historical_summaries entry has somewhere to reach.
type FetchFunc func(key string) ([]byte, error)

// Result is what a successful Verify call returns: the authenticated header
// the proof resolved to, the committee period its signature checked
// against, and the data payload the caller requested verification of.
type Result struct {
	Header synccommittee.BeaconBlockHeader
	Period uint64
	Data   *ssz.Value
}

// Verify implements spec §4.6's verification glue: it decodes the request
// envelope, applies any sync_data updates to ts first, then evaluates the
// envelope's selected proof against its data per method, using fork to
// select the SSZ schema the envelope and its nested structures were built
// against (the caller is expected to know which fork the proved data
// belongs to, since fork dispatch happens once at descriptor construction
// per spec §9, before any byte of the envelope is read).
func Verify(spec *chainspec.Spec, fork chainspec.ForkID, ts *synccommittee.TrustState, method Method, envelope []byte, patricia PatriciaVerifier, fetch FetchFunc) (*Result, error) {
	proofAlt, dataAlt, ok := Lookup(method)
	if !ok {
		return nil, &ProtocolViolation{Detail: "unsupported method " + string(method)}
	}

	env, err := decodeEnvelope(spec, fork, envelope)
	if err != nil {
		return nil, err
	}

	if err := applySyncData(spec, ts, env); err != nil {
		return nil, err
	}

	proofUnion, err := ssz.Index(env, "proof")
	if err != nil {
		return nil, &InvalidEncoding{Path: "request_envelope.proof", Reason: err.Error()}
	}
	proofSel, err := ssz.Selector(proofUnion)
	if err != nil {
		return nil, &InvalidEncoding{Path: "request_envelope.proof", Reason: err.Error()}
	}
	if proofSel < 0 || proofSel >= len(proofUnion.D.Alternatives) || proofUnion.D.Alternatives[proofSel].Name != proofAlt {
		got := "?"
		if proofSel >= 0 && proofSel < len(proofUnion.D.Alternatives) {
			got = proofUnion.D.Alternatives[proofSel].Name
		}
		return nil, fmtUnexpectedAlternative(got, proofAlt)
	}
	proofPayload, err := ssz.Payload(proofUnion)
	if err != nil {
		return nil, &InvalidEncoding{Path: "request_envelope.proof", Reason: err.Error()}
	}

	dataUnion, err := ssz.Index(env, "data")
	if err != nil {
		return nil, &InvalidEncoding{Path: "request_envelope.data", Reason: err.Error()}
	}
	dataSel, err := ssz.Selector(dataUnion)
	if err != nil {
		return nil, &InvalidEncoding{Path: "request_envelope.data", Reason: err.Error()}
	}
	if dataSel < 0 || dataSel >= len(dataUnion.D.Alternatives) || dataUnion.D.Alternatives[dataSel].Name != dataAlt {
		got := "?"
		if dataSel >= 0 && dataSel < len(dataUnion.D.Alternatives) {
			got = dataUnion.D.Alternatives[dataSel].Name
		}
		return nil, fmtUnexpectedAlternative(got, dataAlt)
	}
	dataPayload, err := ssz.Payload(dataUnion)
	if err != nil {
		return nil, &InvalidEncoding{Path: "request_envelope.data", Reason: err.Error()}
	}

	bodyDescriptor, err := ssz.TypeFor(ssz.CategoryBeaconBlockBody, fork, spec.ChainID)
	if err != nil {
		return nil, &UnknownType{Detail: err.Error()}
	}

	var result headerProofResult
	switch proofAlt {
	case "transaction":
		result, err = verifyTransactionProof(spec, ts, bodyDescriptor, proofPayload, dataPayload)
	case "block_number":
		result, err = verifyFieldProof(spec, ts, bodyDescriptor, proofPayload, "block_number", fixedLeafFromUint64(dataPayload))
	case "block_hash":
		result, err = verifyFieldProof(spec, ts, bodyDescriptor, proofPayload, "block_hash", fixedLeafFromBytes32(dataPayload))
	case "block":
		result, err = verifyFieldProof(spec, ts, bodyDescriptor, proofPayload, "block_hash", nil)
	case "account", "receipt", "logs", "call", "state":
		result, err = verifyPatriciaProof(spec, ts, bodyDescriptor, proofAlt, proofPayload, dataPayload, patricia)
	default:
		err = &ProtocolViolation{Detail: "proof category not implemented: " + proofAlt}
	}
	if err != nil {
		return nil, err
	}

	return &Result{Header: result.Header, Period: result.Period, Data: dataPayload}, nil
}

// applySyncData decodes the envelope's sync_data field and feeds every
// update to the sync engine in order, per §4.6's "validation first applies
// any sync_data updates".
func applySyncData(spec *chainspec.Spec, ts *synccommittee.TrustState, env *ssz.Value) error {
	syncDataVal, err := ssz.Index(env, "sync_data")
	if err != nil {
		return &InvalidEncoding{Path: "request_envelope.sync_data", Reason: err.Error()}
	}
	updates, err := decodeLightClientUpdateList(syncDataVal)
	if err != nil {
		return &InvalidEncoding{Path: "request_envelope.sync_data", Reason: err.Error()}
	}
	for _, u := range updates {
		if err := synccommittee.IngestUpdate(spec, ts, u); err != nil {
			return translateIngestError(err)
		}
	}
	return nil
}

func translateIngestError(err error) error {
	switch {
	case errors.Is(err, synccommittee.ErrNoTrustedCommittee):
		return &NoTrustedCommittee{}
	case errors.Is(err, synccommittee.ErrInsufficientParticipation):
		return &InsufficientParticipation{}
	case errors.Is(err, synccommittee.ErrSignatureInvalid):
		return &SignatureInvalid{}
	case errors.Is(err, merkle.ErrProofInvalid):
		return &ProofInvalid{}
	default:
		return err
	}
}
