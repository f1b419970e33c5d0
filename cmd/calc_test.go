package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emi-engine/domain"
	"emi-engine/service"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	calcMode, calcPrincipal, calcEMI, calcRate, calcTenure, calcJSON = "emi", 0, 0, 0, 0, false
	schedPrincipal, schedRate, schedTenure = 0, 0, 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalcCommand(t *testing.T) {
	out, err := runCommand(t, "calc", "--mode", "emi", "--principal", "500000", "--rate", "12", "--tenure", "24")
	require.NoError(t, err)

	assert.Contains(t, out, "23536.74")
	assert.Contains(t, out, "564881.67")
}

func TestCalcCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "calc", "--mode", "rate", "--principal", "500000", "--emi", "23537.01", "--tenure", "24", "--json")
	require.NoError(t, err)

	var result domain.LoanResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Valid)
	assert.InDelta(t, 12.0, result.InterestRate, 0.02)
}

func TestCalcCommand_Invalid(t *testing.T) {
	out, err := runCommand(t, "calc", "--mode", "tenure", "--principal", "500000", "--emi", "4000", "--rate", "12", "--json")

	assert.ErrorIs(t, err, service.ErrNoSolution)

	var result domain.LoanResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, "domain_error", result.Failure)
}

func TestScheduleCommand(t *testing.T) {
	out, err := runCommand(t, "schedule", "--principal", "1200", "--rate", "0", "--tenure", "12")
	require.NoError(t, err)

	assert.Contains(t, out, "Balance")
	assert.Contains(t, out, "EMI 100.00, total payment 1200.00, total interest 0.00")
}

func TestExecute_ReportsErrorOnErrStream(t *testing.T) {
	calcMode, calcPrincipal, calcEMI, calcRate, calcTenure, calcJSON = "emi", 0, 0, 0, 0, false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"calc", "--mode", "fees", "--principal", "100", "--rate", "12", "--tenure", "12"})

	err := Execute()
	require.Error(t, err)

	assert.Equal(t, "Error: "+err.Error()+"\n", errOut.String())
	assert.NotContains(t, errOut.String(), "emi:")
}
