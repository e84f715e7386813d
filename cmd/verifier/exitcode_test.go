package verifier

import (
	"errors"
	"testing"

	"github.com/ethlightclient/verifier/verify"
)

func TestExitCodeForSuccess(t *testing.T) {
	if got := exitCodeFor(nil); got != 0 {
		t.Fatalf("exitCodeFor(nil) = %d, want 0", got)
	}
}

func TestExitCodeForConfigError(t *testing.T) {
	if got := exitCodeFor(newConfigError("bad flag")); got != 3 {
		t.Fatalf("exitCodeFor(configError) = %d, want 3", got)
	}
}

func TestExitCodeForVerificationFailures(t *testing.T) {
	cases := []error{
		&verify.ProofInvalid{GIndex: 7},
		&verify.SignatureInvalid{},
		&verify.InsufficientParticipation{BitsSet: 100},
	}
	for _, err := range cases {
		if got := exitCodeFor(err); got != 1 {
			t.Errorf("exitCodeFor(%T) = %d, want 1", err, got)
		}
	}
}

func TestExitCodeForProtocolIOErrors(t *testing.T) {
	cases := []error{
		&verify.NoTrustedCommittee{Period: 42},
		&verify.IoError{Detail: "fetch", Cause: errors.New("boom")},
	}
	for _, err := range cases {
		if got := exitCodeFor(err); got != 2 {
			t.Errorf("exitCodeFor(%T) = %d, want 2", err, got)
		}
	}
}

func TestExitCodeForUnrecognizedErrorIsConfig(t *testing.T) {
	if got := exitCodeFor(errors.New("cobra usage error")); got != 3 {
		t.Fatalf("exitCodeFor(plain error) = %d, want 3", got)
	}
}
