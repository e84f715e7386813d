package verifier

import "github.com/ethlightclient/verifier/verify"

// configError reports a CLI-level mistake (bad flag, unreadable file,
// unknown chain name) distinct from anything the verify package itself
// can return, per spec §6's exit code 3.
type configError struct{ reason string }

func (e *configError) Error() string { return e.reason }

func newConfigError(reason string) error { return &configError{reason: reason} }

// exitCodeFor maps an error returned by rootCmd.Execute to spec §6's exit
// semantics: 1 verification failure, 2 protocol/IO error, 3 configuration
// error. Anything unrecognized (a cobra usage error, for instance) is
// treated as a configuration error, since it means the CLI was invoked
// wrong rather than that a proof was checked and rejected.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	switch err.(type) {
	case *configError:
		return 3
	case *verify.ProofInvalid, *verify.SignatureInvalid, *verify.InsufficientParticipation:
		return 1
	case *verify.InvalidEncoding, *verify.UnknownType, *verify.ProtocolViolation,
		*verify.IoError, *verify.NoTrustedCommittee, *verify.UnsupportedVersion, *verify.Pending:
		return 2
	default:
		return 3
	}
}
