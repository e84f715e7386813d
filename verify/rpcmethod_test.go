package verify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKnownMethodsResolve(t *testing.T) {
	for _, m := range []Method{
		MethodGetBalance, MethodGetTransactionByHash, MethodGetTransactionReceipt,
		MethodGetLogs, MethodCall, MethodGetProof, MethodGetBlockByNumber,
		MethodBlockNumber, MethodGetCode, MethodGetStorageAt,
	} {
		proofAlt, dataAlt, ok := Lookup(m)
		require.True(t, ok, "method %s should resolve", m)
		require.NotEmpty(t, proofAlt)
		require.NotEmpty(t, dataAlt)
	}
}

func TestLookupUnknownMethodFails(t *testing.T) {
	_, _, ok := Lookup(Method("eth_unknownMethod"))
	require.False(t, ok)
}

func TestLookupGetProofAndGetBalanceShareAccountProofButNotData(t *testing.T) {
	balanceProof, balanceData, ok := Lookup(MethodGetBalance)
	require.True(t, ok)
	proofProof, proofData, ok := Lookup(MethodGetProof)
	require.True(t, ok)

	require.Equal(t, balanceProof, proofProof)
	require.NotEqual(t, balanceData, proofData)
}

func TestLookupGetCodeAndGetStorageAtShareStateProof(t *testing.T) {
	codeProof, codeData, ok := Lookup(MethodGetCode)
	require.True(t, ok)
	storageProof, storageData, ok := Lookup(MethodGetStorageAt)
	require.True(t, ok)

	require.Equal(t, codeProof, storageProof)
	require.NotEqual(t, codeData, storageData)
}
