package synccommittee

import "crypto/sha256"

// DomainSyncCommitteeTag is DOMAIN_SYNC_COMMITTEE from the consensus spec,
// the 4-byte tag mixed into the signing domain for sync committee messages.
var DomainSyncCommitteeTag = [4]byte{0x07, 0x00, 0x00, 0x00}

// ComputeDomain derives the 32-byte signing domain per spec §4.5 step 7:
// the first 28 bytes of SHA256(fork_version || genesis_validators_root),
// followed by the 4-byte domain tag.
func ComputeDomain(forkVersion [4]byte, genesisValidatorsRoot [32]byte) [32]byte {
	h := sha256.New()
	h.Write(forkVersion[:])
	h.Write(genesisValidatorsRoot[:])
	var forkDataRoot [32]byte
	copy(forkDataRoot[:], h.Sum(nil))

	var domain [32]byte
	copy(domain[:28], forkDataRoot[:28])
	copy(domain[28:], DomainSyncCommitteeTag[:])
	return domain
}

// ComputeSigningRoot is SHA256(attested_header_root || domain), the message
// a sync committee's aggregate signature is verified against.
func ComputeSigningRoot(headerRoot [32]byte, domain [32]byte) [32]byte {
	h := sha256.New()
	h.Write(headerRoot[:])
	h.Write(domain[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
