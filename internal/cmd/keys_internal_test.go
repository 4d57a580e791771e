package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysTSV(t *testing.T) {
	var buf bytes.Buffer
	k := &Keys{Only: []string{"a", "btn_left", "esc"}, Format: "table"}
	require.NoError(t, k.write(&buf, false))

	assert.Equal(t,
		"CODE\tNAME\tNATIVE\tRAW\tRAW PATH\n"+
			"30\tKEY_A\tKeyA\t0\tKEY_A\n"+
			"272\tBTN_LEFT\t-\t-\t-\n"+
			"1\tKEY_ESC\tEscape\t53\tKEY_ESC\n",
		buf.String())
}

func TestKeysTable(t *testing.T) {
	var buf bytes.Buffer
	k := &Keys{Only: []string{"sysrq"}, Format: "table"}
	require.NoError(t, k.write(&buf, true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"99", "KEY_SYSRQ", "PrintScreen", "-", "-"}, strings.Fields(lines[1]))
	assert.NotContains(t, buf.String(), "\t")
}

func TestKeysJSON(t *testing.T) {
	var buf bytes.Buffer
	k := &Keys{Format: "json"}
	require.NoError(t, k.write(&buf, false))

	var rows []keyRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.NotEmpty(t, rows)
	for _, r := range rows {
		if r.Name == "KEY_Q" {
			require.NotNil(t, r.Raw)
			assert.Equal(t, 12, *r.Raw)
			assert.Equal(t, "KeyQ", r.Native)
		}
	}
}

func TestKeysUnknownName(t *testing.T) {
	k := &Keys{Only: []string{"hyper"}}
	assert.Error(t, k.write(&bytes.Buffer{}, false))
}

func TestKeysRawPathShowsCollapses(t *testing.T) {
	k := &Keys{Only: []string{"left", "grave", "2", "q"}}
	rows, err := k.rows()
	require.NoError(t, err)

	got := make(map[string]string, len(rows))
	for _, r := range rows {
		got[r.Name] = r.RawPath
	}
	assert.Equal(t, map[string]string{
		"KEY_LEFT":  "BTN_LEFT",
		"KEY_GRAVE": "KEY_APOSTROPHE",
		"KEY_2":     "KEY_NUMERIC_2",
		"KEY_Q":     "KEY_Q",
	}, got)
}
