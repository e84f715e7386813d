package synccommittee

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ethlightclient/verifier/chainspec"
)

// pollInterval mirrors the teacher's header.go ten-second sync tick
// (relays/beacon/header/header.go's time.NewTicker(time.Second*10)).
const pollInterval = 10 * time.Second

// Watch ingests updates arriving on the channel until it is closed or ctx is
// cancelled, advancing ts on each accepted one. It mirrors the teacher's
// Header.Sync: an errgroup goroutine looping on a ticker, classifying errors
// by sentinel so a stale-but-harmless update doesn't kill the loop.
func Watch(ctx context.Context, eg *errgroup.Group, spec *chainspec.Spec, ts *TrustState, updates <-chan LightClientUpdate) {
	eg.Go(func() error {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case update, ok := <-updates:
				if !ok {
					return nil
				}
				err := IngestUpdate(spec, ts, update)
				switch {
				case err == nil:
					log.WithFields(log.Fields{
						"signatureSlot": update.SignatureSlot,
						"finalizedSlot": update.FinalizedHeader.Beacon.Slot,
					}).Info("sync committee update ingested")
				case errors.Is(err, ErrNoTrustedCommittee):
					log.WithError(err).Warn("update references an untrusted period, awaiting bridging update")
				case errors.Is(err, ErrInsufficientParticipation):
					log.WithError(err).Warn("update rejected for low participation")
				default:
					return err
				}
			case <-ticker.C:
				continue
			}
		}
	})
}
