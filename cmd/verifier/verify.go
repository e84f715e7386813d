package verifier

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethlightclient/verifier/chainspec"
	"github.com/ethlightclient/verifier/ssz"
	"github.com/ethlightclient/verifier/storage"
	"github.com/ethlightclient/verifier/synccommittee"
	"github.com/ethlightclient/verifier/verify"
)

var forkNames = map[string]chainspec.ForkID{
	"phase0":    ssz.Phase0,
	"altair":    ssz.Altair,
	"bellatrix": ssz.Bellatrix,
	"capella":   ssz.Capella,
	"deneb":     ssz.Deneb,
	"electra":   ssz.Electra,
	"fulu":      ssz.Fulu,
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a request envelope against a stored trust state",
		Args:  cobra.ExactArgs(0),
		RunE:  runVerify,
	}

	cmd.Flags().String("envelope", "", "path to the SSZ-encoded request envelope")
	cmd.Flags().String("method", "", "RPC method the envelope's proof/data are claimed to answer")
	cmd.Flags().String("chain", "mainnet", "chain spec: mainnet, minimal, or gnosis")
	cmd.Flags().String("fork", "electra", "fork the envelope's SSZ schema was built under")
	cmd.Flags().String("store", "", "directory to persist/load trust state (defaults to an in-memory, non-persistent store)")

	return cmd
}

func runVerify(cmd *cobra.Command, _ []string) error {
	envelopePath, _ := cmd.Flags().GetString("envelope")
	methodName, _ := cmd.Flags().GetString("method")
	chainName, _ := cmd.Flags().GetString("chain")
	forkName, _ := cmd.Flags().GetString("fork")
	storeDir, _ := cmd.Flags().GetString("store")

	if envelopePath == "" {
		return newConfigError("--envelope is required")
	}
	if methodName == "" {
		return newConfigError("--method is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return newConfigError(err.Error())
	}

	spec, err := specForChain(chainName)
	if err != nil {
		return err
	}
	fork, ok := forkNames[forkName]
	if !ok {
		return newConfigError(fmt.Sprintf("unknown fork %q", forkName))
	}

	genesisRoot, err := cfg.genesisRoot()
	if err != nil {
		return newConfigError(err.Error())
	}
	if genesisRoot != ([32]byte{}) {
		spec.GenesisValidatorsRoot = genesisRoot
	}

	envelope, err := os.ReadFile(envelopePath)
	if err != nil {
		return newConfigError(fmt.Sprintf("reading envelope file: %v", err))
	}

	plugin, err := storagePlugin(storeDir)
	if err != nil {
		return newConfigError(fmt.Sprintf("opening trust-state store: %v", err))
	}

	ts, err := synccommittee.LoadTrustState(plugin, int(spec.ChainID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return newConfigError(fmt.Sprintf("loading trust state: %v", err))
		}
		ts = synccommittee.NewTrustState(cfg.BlockRingCapacity, cfg.CommitteeWindow)
	}

	result, verr := verify.Verify(spec, fork, ts, verify.Method(methodName), envelope, nil, nil)
	if verr != nil {
		log.WithError(verr).Error("verification failed")
		return verr
	}

	if err := synccommittee.SaveTrustState(plugin, int(spec.ChainID), ts); err != nil {
		return newConfigError(fmt.Sprintf("saving trust state: %v", err))
	}

	fmt.Printf("accepted: slot=%d period=%d\n", result.Header.Slot, result.Period)
	return nil
}

func specForChain(name string) (*chainspec.Spec, error) {
	switch name {
	case "mainnet":
		return chainspec.Mainnet(), nil
	case "minimal":
		return chainspec.Minimal(), nil
	case "gnosis":
		return chainspec.Gnosis(), nil
	default:
		return nil, newConfigError(fmt.Sprintf("unknown chain %q (want mainnet, minimal, or gnosis)", name))
	}
}

func storagePlugin(dir string) (storage.Plugin, error) {
	if dir == "" {
		return storage.NewMemory(), nil
	}
	return storage.NewFile(dir)
}
