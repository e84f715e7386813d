package chainspec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMainnetForkAtSlot(t *testing.T) {
	s := Mainnet()
	require.Equal(t, Phase0, s.ForkAtSlot(0))
	require.Equal(t, Deneb, s.ForkAtSlot(269568*32))
	require.Equal(t, Electra, s.ForkAtSlot(364032*32))
}

func TestMainnetPeriodAtSlot(t *testing.T) {
	s := Mainnet()
	require.Equal(t, uint64(0), s.PeriodAtSlot(0))
	require.Equal(t, uint64(1), s.PeriodAtSlot(s.SlotsPerEpoch*s.EpochsPerSyncPeriod))
}

func TestGnosisWithdrawalsLimit(t *testing.T) {
	require.Equal(t, 8, Gnosis().WithdrawalsLimit())
	require.Equal(t, 16, Mainnet().WithdrawalsLimit())
}

func TestForkVersionUnknownFork(t *testing.T) {
	s := Mainnet()
	_, err := s.ForkVersion(Fulu)
	require.Error(t, err)
}

func TestMinimalSpecEverythingAtGenesis(t *testing.T) {
	s := Minimal()
	require.Equal(t, Electra, s.ForkAtSlot(0))
}
