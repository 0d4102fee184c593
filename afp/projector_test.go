package afp

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processAll(t *testing.T, data []byte) *File {
	t.Helper()
	path := writeTempFile(t, data)
	dec, err := Open(path, nil)
	require.NoError(t, err)
	defer dec.Close()

	proj := NewProjector()
	for {
		sf, err := dec.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		proj.Feed(sf)
	}
	return proj.Finalize()
}

func fqnAttrValPayload(t *testing.T, name, value string) []byte {
	fqn := tripletBytes(0x02, append([]byte{0x00, 0x00}, cp500Bytes(t, name)...))
	attrVal := tripletBytes(0x36, append([]byte{0x00, 0x00}, cp500Bytes(t, value)...))
	return append(fqn, attrVal...)
}

// S2 - one document, one page, one TLE.
func TestScenarioOneDocOnePageOneTLE(t *testing.T) {
	data := bytes.Join([][]byte{
		sfBytes(bngID, nil),
		sfBytes(bpgID, nil),
		sfBytes(tleID, fqnAttrValPayload(t, "CUST_ID", "12345")),
		sfBytes(epgID, nil),
		sfBytes(engID, nil),
	}, nil)

	file := processAll(t, data)
	require.Equal(t, 1, file.DocCount)
	require.Equal(t, 1, file.PageCount)
	require.Len(t, file.Documents, 1)
	require.Len(t, file.Documents[0].Pages, 1)
	page := file.Documents[0].Pages[0]
	require.Len(t, page.TLE, 1)
	assert.Equal(t, "CUST_ID", page.TLE[0].Name)
	assert.Equal(t, "12345", page.TLE[0].Value)
}

// S3 - IMM affects subsequent pages only, and never resets across document
// boundaries (the rolling-paper-tray open question, preserved as specified).
func TestScenarioIMMAffectsOnlySubsequentPages(t *testing.T) {
	data := bytes.Join([][]byte{
		sfBytes(bngID, nil),
		sfBytes(bpgID, nil),
		sfBytes(immID, cp500Bytes(t, "TRAY_A ")),
		sfBytes(bpgID, nil),
		sfBytes(epgID, nil),
		sfBytes(epgID, nil),
		sfBytes(engID, nil),
	}, nil)

	file := processAll(t, data)
	pages := file.Documents[0].Pages
	require.Len(t, pages, 2)
	assert.Equal(t, "NA", pages[0].PaperTray)
	assert.Equal(t, "TRAY_A", pages[1].PaperTray)
}

func TestRollingPaperTrayNeverResetsAcrossDocuments(t *testing.T) {
	data := bytes.Join([][]byte{
		sfBytes(bngID, nil),
		sfBytes(immID, cp500Bytes(t, "TRAY_B ")),
		sfBytes(bpgID, nil),
		sfBytes(epgID, nil),
		sfBytes(engID, nil),
		// second document, no IMM issued in it at all
		sfBytes(bngID, nil),
		sfBytes(bpgID, nil),
		sfBytes(epgID, nil),
		sfBytes(engID, nil),
	}, nil)

	file := processAll(t, data)
	require.Len(t, file.Documents, 2)
	assert.Equal(t, "TRAY_B", file.Documents[1].Pages[0].PaperTray)
}

// S5 - missing EPG at EOF: both the open page and its document get warnings.
func TestScenarioMissingEPGAtEOF(t *testing.T) {
	data := bytes.Join([][]byte{
		sfBytes(bngID, nil),
		sfBytes(bpgID, nil),
	}, nil)

	file := processAll(t, data)
	require.Equal(t, 1, file.DocCount)
	require.Equal(t, 1, file.PageCount)
	require.Len(t, file.Documents, 1)
	doc := file.Documents[0]
	require.Len(t, doc.Pages, 1)
	assert.Contains(t, doc.Pages[0].Warnings, "page not properly closed")
	assert.Contains(t, doc.Warnings, "document not properly closed")
}

// Invariant 5: doc_count/page_count match the number of BNG/BPG records.
func TestCountsMatchBeginMarkers(t *testing.T) {
	data := bytes.Join([][]byte{
		sfBytes(bngID, nil),
		sfBytes(bpgID, nil),
		sfBytes(epgID, nil),
		sfBytes(bpgID, nil),
		sfBytes(epgID, nil),
		sfBytes(engID, nil),
		sfBytes(bngID, nil),
		sfBytes(bpgID, nil),
		sfBytes(epgID, nil),
		sfBytes(engID, nil),
	}, nil)

	file := processAll(t, data)
	assert.Equal(t, 2, file.DocCount)
	assert.Equal(t, 3, file.PageCount)
}

func TestOrphanEPGIsWarningNotFatal(t *testing.T) {
	data := bytes.Join([][]byte{
		sfBytes(epgID, nil),
		sfBytes(bngID, nil),
		sfBytes(engID, nil),
	}, nil)

	file := processAll(t, data)
	assert.Contains(t, file.Warnings, "orphan EPG: no open page")
	assert.Equal(t, 1, file.DocCount)
}

func TestNOPAttachesToCurrentTarget(t *testing.T) {
	nopPayload := cp500Bytes(t, "A NOTE")
	data := bytes.Join([][]byte{
		sfBytes(bngID, nil),
		sfBytes(nopID, nopPayload),
		sfBytes(engID, nil),
	}, nil)

	file := processAll(t, data)
	require.Len(t, file.Documents[0].NOP, 1)
	assert.Equal(t, "A NOTE", file.Documents[0].NOP[0])
}
