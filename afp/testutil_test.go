package afp

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sfBytes builds one structured field (no extension) with the given 3-byte
// ID and raw payload.
func sfBytes(id [3]byte, payload []byte) []byte {
	sfLen := uint16(8 + len(payload))
	out := make([]byte, 0, 1+int(sfLen))
	out = append(out, sentinel)
	lenBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBuf, sfLen)
	out = append(out, lenBuf...)
	out = append(out, id[:]...)
	out = append(out, 0x00)       // flags: no extension
	out = append(out, 0x00, 0x00) // reserved
	out = append(out, payload...)
	return out
}

// tripletBytes builds one triplet header+body.
func tripletBytes(id byte, body []byte) []byte {
	out := make([]byte, 0, 2+len(body))
	out = append(out, byte(len(body)+2), id)
	out = append(out, body...)
	return out
}

// cp500Bytes encodes the limited alphabet used by test fixtures (upper-case
// letters, digits, underscore, space) into cp500, mirroring the runs
// internal/cp500's decode table defines.
func cp500Bytes(t *testing.T, s string) []byte {
	t.Helper()
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'I':
			out[i] = 0xC1 + (c - 'A')
		case c >= 'J' && c <= 'R':
			out[i] = 0xD1 + (c - 'J')
		case c >= 'S' && c <= 'Z':
			out[i] = 0xE2 + (c - 'S')
		case c >= '0' && c <= '9':
			out[i] = 0xF0 + (c - '0')
		case c == '_':
			out[i] = 0x6D
		case c == ' ':
			out[i] = 0x40
		default:
			require.Failf(t, "unsupported test fixture character", "%q", c)
		}
	}
	return out
}

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.afp")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
