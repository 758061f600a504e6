package trafficfsm

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSameBehaviour(t *testing.T, want, got Table) {
	t.Helper()
	for _, s := range AllStates() {
		assert.Equal(t, want[s].MainOutput, got[s].MainOutput, "main output of %s", s)
		assert.Equal(t, want[s].PedOutput, got[s].PedOutput, "ped output of %s", s)
		assert.Equal(t, want[s].HoldTicks, got[s].HoldTicks, "hold of %s", s)
		for in := InputVector(0); in < NumInputs; in++ {
			assert.Equal(t, want.Lookup(s, in), got.Lookup(s, in), "%s on %s", s, in)
		}
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	table := DefaultTable()
	table[GoWest].HoldTicks = 200

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeTable(&buf, table, format))

			decoded, err := DecodeTable(&buf, format)
			require.NoError(t, err)
			assertSameBehaviour(t, table, decoded)
		})
	}
}

func TestCodec_JSONUsesStateNames(t *testing.T) {
	data, err := json.Marshal(DefaultTable())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"name":"GoPed"`)
	assert.Contains(t, text, `"next":["GoWest","GoWest","WaitWest"`)
	assert.Contains(t, text, `"main":12`)
}

func TestCodec_YAMLDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTable(&buf, DefaultTable(), FormatYAML))

	text := buf.String()
	assert.Contains(t, text, "name: PedFlashOn2")
	assert.Contains(t, text, "hold_ticks: 5")
	assert.Contains(t, text, "[GoWest, GoWest, GoWest, GoWest, GoWest, GoWest, GoWest, GoWest]")
}

func TestCodec_RejectsShortRow(t *testing.T) {
	doc := DefaultTable().document()
	doc.States[WaitSouth].Next = doc.States[WaitSouth].Next[:7]
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = DecodeTable(bytes.NewReader(data), FormatJSON)
	require.Error(t, err)
	assert.Equal(t, ErrCodeIncompleteTable, GetErrorCode(err))
	assert.Contains(t, err.Error(), "WaitSouth")
}

func TestCodec_RejectsMissingAndDuplicateStates(t *testing.T) {
	doc := DefaultTable().document()
	doc.States[PedFlashOff2] = doc.States[PedFlashOff1]
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = DecodeTable(bytes.NewReader(data), FormatJSON)
	require.Error(t, err)

	joined, ok := errors.Unwrap(err).(interface{ Unwrap() []error })
	require.True(t, ok, "expected joined errors, got %T", err)
	codes := make([]ErrorCode, 0)
	for _, e := range joined.Unwrap() {
		codes = append(codes, GetErrorCode(e))
	}
	assert.ElementsMatch(t, []ErrorCode{ErrCodeInvalidState, ErrCodeIncompleteTable}, codes)
}

func TestCodec_RejectsUnknownStateName(t *testing.T) {
	data, err := json.Marshal(DefaultTable())
	require.NoError(t, err)
	broken := strings.Replace(string(data), `"next":["GoWest"`, `"next":["GoNorth"`, 1)

	_, err = DecodeTable(strings.NewReader(broken), FormatJSON)
	require.Error(t, err)
	assert.True(t, IsStateError(err))
	assert.Contains(t, err.Error(), "GoNorth")
}

func TestCodec_RejectsUnsafeTable(t *testing.T) {
	table := DefaultTable()
	table[GoSouth].PedOutput = Walk

	var buf bytes.Buffer
	require.NoError(t, EncodeTable(&buf, table, FormatYAML))

	_, err := DecodeTable(&buf, FormatYAML)
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnsafeOutput, GetErrorCode(err))
}

func TestCodec_InvalidStateCannotBeEncoded(t *testing.T) {
	table := DefaultTable()
	table[GoWest].Next[3] = StateID(42)

	_, err := json.Marshal(table)
	assert.Error(t, err)
}

func TestCodec_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, IsConfigurationError(EncodeTable(&buf, DefaultTable(), Format("toml"))))

	_, err := DecodeTable(&buf, Format("toml"))
	assert.True(t, IsConfigurationError(err))
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"table.json", FormatJSON},
		{"TABLE.JSON", FormatJSON},
		{"conf/table.yaml", FormatYAML},
		{"table.yml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := FormatForPath(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatForPath("table.txt")
	assert.True(t, IsConfigurationError(err))
}

func TestSaveAndLoadTable(t *testing.T) {
	dir := t.TempDir()
	table := DefaultTable()
	table[GoPed].HoldTicks = 400

	for _, name := range []string{"table.json", "table.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveTable(path, table))

		loaded, err := LoadTable(path)
		require.NoError(t, err)
		assertSameBehaviour(t, table, loaded)
	}
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
