package afp

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holocm/afp-dump/filter"
)

var (
	bdtID = [3]byte{0xD3, 0xA8, 0xA8}
	edtID = [3]byte{0xD3, 0xA9, 0xA8}
	bngID = [3]byte{0xD3, 0xA8, 0xAD}
	engID = [3]byte{0xD3, 0xA9, 0xAD}
	bpgID = [3]byte{0xD3, 0xA8, 0xAF}
	epgID = [3]byte{0xD3, 0xA9, 0xAF}
	tleID = [3]byte{0xD3, 0xA0, 0x90}
	immID = [3]byte{0xD3, 0xAB, 0xCC}
	nopID = [3]byte{0xD3, 0xEE, 0xEE}
)

func readAll(t *testing.T, path string, f *filter.Filter) ([]DecodedSF, *Decoder) {
	t.Helper()
	dec, err := Open(path, f)
	require.NoError(t, err)
	var out []DecodedSF
	for {
		sf, err := dec.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, sf)
	}
	return out, dec
}

// S1 - minimal file: BDT followed by EDT.
func TestScenarioMinimalFile(t *testing.T) {
	data := append(sfBytes(bdtID, nil), sfBytes(edtID, nil)...)
	path := writeTempFile(t, data)

	records, dec := readAll(t, path, nil)
	defer dec.Close()

	require.Len(t, records, 2)
	assert.Equal(t, "BDT", records[0].ShortName)
	assert.Equal(t, "EDT", records[1].ShortName)
	assert.Empty(t, records[0].Payload)
	assert.Empty(t, records[1].Payload)
}

// S4 - unknown SF between BDT/EDT.
func TestScenarioUnknownSF(t *testing.T) {
	unknown := [3]byte{0xD3, 0xFF, 0xFF}
	data := bytes.Join([][]byte{
		sfBytes(bdtID, nil),
		sfBytes(unknown, []byte{0x01, 0x02, 0x03, 0x04}),
		sfBytes(edtID, nil),
	}, nil)
	path := writeTempFile(t, data)

	records, dec := readAll(t, path, nil)
	defer dec.Close()

	require.Len(t, records, 3)
	assert.Equal(t, "NA", records[1].ShortName)
	assert.Equal(t, map[string]interface{}{"NA": "01020304"}, records[1].Payload)
}

// S6 - filter skips a field's payload entirely.
func TestScenarioFilterSkipsPayload(t *testing.T) {
	bigPayload := bytes.Repeat([]byte{0xAB}, 4096)
	data := bytes.Join([][]byte{
		sfBytes(bdtID, nil),
		sfBytes(tleID, bigPayload),
		sfBytes(edtID, nil),
	}, nil)
	path := writeTempFile(t, data)

	f, err := filter.New([]string{"BDT", "EDT"})
	require.NoError(t, err)

	records, dec := readAll(t, path, f)
	defer dec.Close()

	require.Len(t, records, 2)
	assert.Equal(t, "BDT", records[0].ShortName)
	assert.Equal(t, "EDT", records[1].ShortName)
	assert.Zero(t, dec.ParsedBytes())
	assert.Greater(t, dec.SkippedBytes(), int64(4000))
}

// Invariant 1: sum of sf_len+1 over emitted SFs equals file length, for a
// file with no filtering in effect.
func TestInvariantOffsetsSumToFileLength(t *testing.T) {
	data := bytes.Join([][]byte{
		sfBytes(bdtID, nil),
		sfBytes(bngID, nil),
		sfBytes(bpgID, nil),
		sfBytes(epgID, nil),
		sfBytes(engID, nil),
		sfBytes(edtID, nil),
	}, nil)
	path := writeTempFile(t, data)

	_, dec := readAll(t, path, nil)
	defer dec.Close()

	assert.Equal(t, int64(len(data)), dec.Offset())
}

// Invariant 8: an SF with has_extension=0 never consumes extension bytes.
func TestNoExtensionConsumesNoExtraBytes(t *testing.T) {
	data := sfBytes(bdtID, []byte{0x11, 0x22})
	path := writeTempFile(t, data)

	records, dec := readAll(t, path, nil)
	defer dec.Close()

	require.Len(t, records, 1)
	assert.False(t, records[0].SFI.HasExtension)
	assert.Empty(t, records[0].SFI.ExtensionData)
}

// Invariant 9/10: a zero-byte-payload BDT/EDT pair parses to exactly two
// records with empty payload maps.
func TestZeroPayloadParsesCleanly(t *testing.T) {
	data := append(sfBytes(bdtID, nil), sfBytes(edtID, nil)...)
	path := writeTempFile(t, data)

	records, dec := readAll(t, path, nil)
	defer dec.Close()

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, 0, r.SFI.PayloadLen)
		assert.Empty(t, r.Payload)
	}
}

func TestRepeatedDecodeIsByteIdentical(t *testing.T) {
	data := bytes.Join([][]byte{sfBytes(bdtID, nil), sfBytes(immID, cp500Bytes(t, "TRAY_A ")), sfBytes(edtID, nil)}, nil)
	path := writeTempFile(t, data)

	first, dec1 := readAll(t, path, nil)
	dec1.Close()
	second, dec2 := readAll(t, path, nil)
	dec2.Close()

	assert.Equal(t, first, second)
}

func TestNotAnAfpFile(t *testing.T) {
	path := writeTempFile(t, []byte{0x00, 0x01, 0x02})
	dec, err := Open(path, nil)
	require.NoError(t, err)
	defer dec.Close()

	_, err = dec.Next()
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, NotAnAfpFile, de.Kind)
}

func TestUnexpectedEOF(t *testing.T) {
	// Sentinel plus a truncated SFI.
	path := writeTempFile(t, []byte{0x5A, 0x00, 0x08, 0xD3})
	dec, err := Open(path, nil)
	require.NoError(t, err)
	defer dec.Close()

	_, err = dec.Next()
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, UnexpectedEof, de.Kind)
}

func TestMalformedSfiOnNegativePayloadLen(t *testing.T) {
	// sf_len = 4 is less than the fixed 8-byte SFI, so payload_len goes negative.
	raw := []byte{0x5A, 0x00, 0x04, 0xD3, 0xA8, 0xA8, 0x00, 0x00, 0x00}
	path := writeTempFile(t, raw)
	dec, err := Open(path, nil)
	require.NoError(t, err)
	defer dec.Close()

	_, err = dec.Next()
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, MalformedSfi, de.Kind)
}
