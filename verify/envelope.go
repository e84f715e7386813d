package verify

import (
	"fmt"

	"github.com/ethlightclient/verifier/chainspec"
	"github.com/ethlightclient/verifier/ssz"
)

// domainEthereum is the single supported request-envelope domain byte (§6).
const domainEthereum = 1

// decodeEnvelope parses raw as a RequestEnvelope under fork/chainID and
// checks its version, returning the decoded value for further dispatch.
func decodeEnvelope(spec *chainspec.Spec, fork chainspec.ForkID, raw []byte) (*ssz.Value, error) {
	d, err := ssz.TypeFor(ssz.CategoryRequestEnvelope, fork, spec.ChainID)
	if err != nil {
		return nil, &UnknownType{Detail: err.Error()}
	}
	v, err := ssz.Decode(d, raw)
	if err != nil {
		return nil, &InvalidEncoding{Path: "request_envelope", Reason: err.Error()}
	}

	versionVal, err := ssz.Index(v, "version")
	if err != nil {
		return nil, &InvalidEncoding{Path: "request_envelope.version", Reason: err.Error()}
	}
	if len(versionVal.Data) != 4 {
		return nil, &InvalidEncoding{Path: "request_envelope.version", Reason: "expected 4 bytes"}
	}
	var version [4]byte
	copy(version[:], versionVal.Data)
	if version[0] != domainEthereum {
		return nil, &UnsupportedVersion{Version: version}
	}

	return v, nil
}

// fieldIndexInAlternatives returns the position of name within alts, used to
// check that a union's active selector names the alternative a method
// expects.
func fieldIndexInAlternatives(alts []ssz.Field, name string) (int, bool) {
	for i, f := range alts {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

func fmtUnexpectedAlternative(got string, want string) error {
	return &ProtocolViolation{Detail: fmt.Sprintf("envelope selected %q, method expects %q", got, want)}
}
