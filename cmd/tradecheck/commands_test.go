package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/bond-crm-service/internal/direction"
	"github.com/trogers1052/bond-crm-service/internal/models"
)

const boseraTranscript = "Bosera: Bosera bid 10mm DKS 52\nPaul: @ 100\nBosera: Done"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	transcript := writeFile(t, dir, "chat.txt", boseraTranscript)
	candidates := writeFile(t, dir, "activities.json",
		`[{"clientName":"Bosera","direction":"SELL","size":10000000,"notes":"","confidence":"high"}]`)

	out, err := execute(t, "", "validate", "--transcript", transcript, "--candidates", candidates)
	require.NoError(t, err)

	var result models.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Activities, 1)
	assert.Equal(t, models.DirectionBuy, result.Activities[0].Direction)
	assert.Equal(t, models.ConfidenceMedium, result.Activities[0].Confidence)
	assert.Equal(t, " [Auto-corrected from SELL to BUY]", result.Activities[0].Notes)
	assert.Equal(t, "10000000", result.Activities[0].Size.Decimal.String())
	require.Len(t, result.Corrections, 1)
	assert.Equal(t, direction.RuleMakingBid, result.Corrections[0].Rule)
}

func TestValidateCommand_BadCandidates(t *testing.T) {
	dir := t.TempDir()
	transcript := writeFile(t, dir, "chat.txt", boseraTranscript)
	candidates := writeFile(t, dir, "activities.json", `{"clientName":`)

	_, err := execute(t, "", "validate", "--transcript", transcript, "--candidates", candidates)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse candidates")
}

func TestValidateCommand_RequiresFlags(t *testing.T) {
	_, err := execute(t, "", "validate")

	require.Error(t, err)
}

func TestClassifyCommand_FromStdin(t *testing.T) {
	out, err := execute(t, "Client: what's your bid on 5MM XYZ bond?", "classify")
	require.NoError(t, err)

	var got classifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, direction.Sell, got.Direction)
	assert.Equal(t, direction.RuleAskingBid, got.Rule)
}

func TestClassifyCommand_CustomInstitutions(t *testing.T) {
	dir := t.TempDir()
	institutions := writeFile(t, dir, "institutions.yaml", "institutions:\n  - Harbor Capital\n")
	transcript := writeFile(t, dir, "chat.txt", "Harbor Capital: Harbor Capital offers 5mm")

	out, err := execute(t, "", "--institutions", institutions, "classify", "--transcript", transcript, "--client", "Harbor Capital")
	require.NoError(t, err)

	var got classifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, direction.Sell, got.Direction)
	assert.Equal(t, direction.RuleMakingOffer, got.Rule)
}

func TestClassifyCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "", "classify", "--transcript", filepath.Join(t.TempDir(), "nope.txt"))

	require.Error(t, err)
}
