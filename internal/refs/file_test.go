package refs

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplnobj/codec/internal/model"
)

func id(v uint64) *uint64 { return &v }

func TestParseID(t *testing.T) {
	v, err := ParseID("000042")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	_, err = ParseID("sim/door")
	assert.Error(t, err)
	_, err = ParseID("12abc")
	assert.Error(t, err)

	assert.Equal(t, "000042", FormatID(42))
	assert.Equal(t, "1234567", FormatID(1234567))
}

func TestReadDatarefs(t *testing.T) {
	in := " first line \n" +
		"\n" +
		"sim/aircraft/autopilot/vvi_step_ft\tfloat\ty\tFeet\tStep increment for autopilot VVI\n" +
		"# comment\n" +
		"sim/aircraft/view/acf_Vno\tfloat\ty\n" +
		"000012\tsim/custom/door\tint\tn\tboolean\r\n" +
		"only_key_test\n"

	d, err := ReadDatarefs(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, d, 4)

	assert.Equal(t, model.Dataref{Key: "sim/aircraft/autopilot/vvi_step_ft", Type: "float", Writable: true, Units: "Feet", Description: "Step increment for autopilot VVI"}, d[0])
	assert.Equal(t, model.Dataref{Key: "sim/aircraft/view/acf_Vno", Type: "float", Writable: true}, d[1])
	assert.Equal(t, model.Dataref{RefID: id(12), Key: "sim/custom/door", Type: "int", Units: "boolean"}, d[2])
	assert.Equal(t, model.Dataref{Key: "only_key_test"}, d[3])
}

func TestReadDatarefs_HeaderOnly(t *testing.T) {
	d, err := ReadDatarefs(strings.NewReader("sim/looks/like/a/ref\tfloat\ty\n"))
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestWriteDatarefs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDatarefs(&buf, []model.Dataref{
		{RefID: id(5), Key: "sim/a", Type: "float", Writable: true, Units: "m", Description: "A value"},
		{Key: "sim/b", Type: "int"},
		{Key: "sim/c", Description: "dropped without a type"},
	}))

	assert.Equal(t, "\n"+
		"000005\tsim/a\tfloat\ty\tm\tA value\n"+
		"sim/b\tint\tn\n"+
		"sim/c\n", buf.String())

	back, err := ReadDatarefs(&buf)
	require.NoError(t, err)
	require.Len(t, back, 3)
	assert.Equal(t, uint64(5), *back[0].RefID)
	assert.Equal(t, "A value", back[0].Description)
}

func TestReadCommands(t *testing.T) {
	in := "# commands\n" +
		"sim/operation/pause_toggle    Pause the sim.\n" +
		"\n" +
		"000003 sim/custom/door_open  Open the cabin door\n" +
		"sim/only/key\n"

	c, err := ReadCommands(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, c, 3)

	assert.Equal(t, model.Command{Key: "sim/operation/pause_toggle", Description: "Pause the sim."}, c[0])
	assert.Equal(t, model.Command{RefID: id(3), Key: "sim/custom/door_open", Description: "Open the cabin door"}, c[1])
	assert.Equal(t, model.Command{Key: "sim/only/key"}, c[2])
}

func TestWriteCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCommands(&buf, []model.Command{
		{RefID: id(3), Key: "sim/a", Description: "Do a"},
		{Key: "sim/b"},
	}))
	assert.Equal(t, "000003    sim/a    Do a\nsim/b\n", buf.String())
}

func TestLastID(t *testing.T) {
	assert.Equal(t, uint64(0), LastID([]model.Command{{Key: "a"}}))
	assert.Equal(t, uint64(9), LastID([]model.Dataref{{RefID: id(9)}, {Key: "b"}, {RefID: id(2)}}))
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check([]model.Dataref{{RefID: id(1), Key: "a"}, {Key: "b"}, {Key: "c"}}))

	err := Check([]model.Dataref{{RefID: id(1), Key: "a"}, {RefID: id(1), Key: "b"}})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "000001")

	err = Check([]model.Command{{Key: "a"}, {Key: "a"}})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("refs.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("refs.YML"))
	assert.Equal(t, FormatTOML, FormatOf("refs.toml"))
	assert.Equal(t, FormatText, FormatOf("DataRefs.txt"))
	assert.Equal(t, FormatText, FormatOf("commands"))
}

func TestFiles_RoundTrip(t *testing.T) {
	datarefs := []model.Dataref{
		{RefID: id(1), Key: "sim/a", Type: "float", Writable: true, Units: "m", Description: "A"},
		{Key: "sim/b", Type: "int"},
	}
	commands := []model.Command{
		{RefID: id(7), Key: "sim/door/open", Description: "Open"},
		{Key: "sim/door/close"},
	}

	for _, ext := range []string{".txt", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			drfPath := filepath.Join(dir, "datarefs"+ext)
			cmdPath := filepath.Join(dir, "commands"+ext)

			require.NoError(t, SaveDatarefs(drfPath, datarefs))
			require.NoError(t, SaveCommands(cmdPath, commands))

			gotD, err := LoadDatarefs(drfPath)
			require.NoError(t, err)
			assert.Equal(t, datarefs, gotD)

			gotC, err := LoadCommands(cmdPath)
			require.NoError(t, err)
			assert.Equal(t, commands, gotC)
		})
	}
}

func TestDecodeDatarefs_YAML(t *testing.T) {
	in := `datarefs:
  - id: 42
    key: sim/custom/gear
    type: int
    writable: true
  - key: sim/custom/flaps
`
	d, err := DecodeDatarefs(strings.NewReader(in), FormatYAML)
	require.NoError(t, err)
	require.Len(t, d, 2)
	assert.Equal(t, uint64(42), *d[0].RefID)
	assert.True(t, d[0].Writable)
	assert.Nil(t, d[1].RefID)
}

func TestDecodeCommands_TOML(t *testing.T) {
	in := `[[commands]]
id = 3
key = "sim/custom/horn"
description = "Sound the horn"
`
	c, err := DecodeCommands(strings.NewReader(in), FormatTOML)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, model.Command{RefID: id(3), Key: "sim/custom/horn", Description: "Sound the horn"}, c[0])
}

func TestDecode_Invalid(t *testing.T) {
	_, err := DecodeDatarefs(strings.NewReader("datarefs: [: bad"), FormatYAML)
	assert.Error(t, err)
	_, err = DecodeCommands(strings.NewReader("[[commands]\n"), FormatTOML)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadDatarefs(filepath.Join(t.TempDir(), "none.txt"))
	assert.Error(t, err)
}
