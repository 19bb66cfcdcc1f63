package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/sheets/internal/config"
)

const replayScript = `
- op: push
  content: A
  options: {placement: right, size: 50}
- op: push
  content: B
  options: {placement: bottom, size: 30}
  cover: {size: 20}
`

func runReplayWith(t *testing.T, format string, trace bool, input string) (string, error) {
	t.Helper()

	cfg = config.DefaultConfig()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	replayOpts.format = format
	replayOpts.trace = trace
	replayOpts.template = ""
	t.Cleanup(func() {
		replayOpts.format = "plain"
		replayOpts.trace = false
	})

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)

	err := runReplay(cmd, nil)
	return out.String(), err
}

func TestReplay_JSON(t *testing.T) {
	out, err := runReplayWith(t, "json", false, replayScript)
	require.NoError(t, err)

	var layers []struct {
		Content any `json:"content"`
		Options struct {
			Placement string  `json:"placement"`
			Size      float64 `json:"size"`
		} `json:"options"`
		Top bool `json:"top"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &layers))
	require.Len(t, layers, 2)

	assert.Equal(t, "A", layers[0].Content)
	assert.Equal(t, "right", layers[0].Options.Placement)
	assert.Equal(t, 20.0, layers[0].Options.Size)
	assert.False(t, layers[0].Top)

	assert.Equal(t, "B", layers[1].Content)
	assert.True(t, layers[1].Top)
}

func TestReplay_Trace(t *testing.T) {
	out, err := runReplayWith(t, "plain", true, replayScript)
	require.NoError(t, err)

	assert.Contains(t, out, "# step 1: push")
	assert.Contains(t, out, "# step 2: push")
}

func TestReplay_InvalidScript(t *testing.T) {
	_, err := runReplayWith(t, "plain", false, "- op: pop\n  content: x\n")
	assert.Error(t, err)
}

func TestReplay_UnknownFormat(t *testing.T) {
	_, err := runReplayWith(t, "xml", false, replayScript)
	assert.Error(t, err)
}
