/*******************************************************************************
*
* Copyright 2016 Stefan Majewsky <majewsky@gmx.net>
*
* This file is part of Holo.
*
* Holo is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* Holo is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* Holo. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

// Package catalog holds the static, process-wide tables that describe how
// structured fields and triplets are shaped: which 3-byte (resp. 1-byte) IDs
// are known, what their short/long names are, and how to walk their payload.
//
// Nothing here is mutable after init(); callers only ever read.
package catalog

// ComponentType tags how a Component's bytes should be turned into a value.
type ComponentType int

const (
	// HEXA renders raw bytes as an uppercase hex string. A HEXA value whose
	// effective length is <= 1 is omitted from the payload map entirely.
	HEXA ComponentType = iota
	// CHAR decodes bytes as EBCDIC cp500 text, trimming trailing whitespace.
	CHAR
	// TRIPLETS recurses into the triplet sub-grammar for the remainder of
	// the enclosing region.
	TRIPLETS
	// CODE renders raw bytes as hex, same as HEXA but legal at triplet level
	// regardless of length (no length-1 omission rule).
	CODE
	// PARAM is a single raw byte rendered as hex.
	PARAM
	// GID decodes bytes as an EBCDIC cp500 identifier.
	GID
	// UBIN parses bytes as an unsigned big-endian integer.
	UBIN
	// RESERVED consumes bytes without producing a payload entry.
	RESERVED
)

// Component describes one named field inside a payload or triplet body.
// Length == 0 means "consume whatever remains of the enclosing region".
type Component struct {
	Name      string
	Length    int
	Type      ComponentType
	Mandatory bool
}

// SFSchema is a structured field's catalog entry: its two names and the
// ordered list of components that make up its payload.
type SFSchema struct {
	ShortName  string
	LongName   string
	Components []Component
}

// TripletSchema is a triplet's catalog entry, shaped the same way as
// SFSchema but keyed by a 1-byte ID instead of a 3-byte one.
type TripletSchema struct {
	ShortName  string
	LongName   string
	Components []Component
}

// SFIComponents documents the fixed 6-component shape of every Structured
// Field Introducer. The decoder does not walk this list generically -- the
// extension_len/extension_data pair depends on a flag bit read mid-stream,
// which the generic Component walker has no notion of -- but the shape is
// recorded here so the catalog remains the single source of truth for what
// an SFI contains.
var SFIComponents = []Component{
	{Name: "sf_len", Length: 2, Type: UBIN, Mandatory: true},
	{Name: "sf_id", Length: 3, Type: CODE, Mandatory: true},
	{Name: "flags", Length: 1, Type: CODE, Mandatory: true},
	{Name: "reserved", Length: 2, Type: RESERVED, Mandatory: true},
	{Name: "extension_len", Length: 1, Type: UBIN, Mandatory: false},
	{Name: "extension_data", Length: 0, Type: HEXA, Mandatory: false},
}

// defaultSFSchema is used for any cataloged SF that carries no specialized
// payload shape: the whole payload is recorded as one HEXA blob.
var defaultSFSchema = SFSchema{
	Components: []Component{
		{Name: "data", Length: 0, Type: HEXA, Mandatory: false},
	},
}

// defaultTripletSchema mirrors defaultSFSchema for triplets.
var defaultTripletSchema = TripletSchema{
	Components: []Component{
		{Name: "data", Length: 0, Type: HEXA, Mandatory: false},
	},
}

var sfByID = map[[3]byte]SFSchema{}
var tripletByID = map[byte]TripletSchema{}

func registerSF(id [3]byte, short, long string, components ...Component) {
	schema := SFSchema{ShortName: short, LongName: long}
	if len(components) == 0 {
		schema.Components = defaultSFSchema.Components
	} else {
		schema.Components = components
	}
	sfByID[id] = schema
}

func registerTriplet(id byte, short, long string, components ...Component) {
	schema := TripletSchema{ShortName: short, LongName: long}
	if len(components) == 0 {
		schema.Components = defaultTripletSchema.Components
	} else {
		schema.Components = components
	}
	tripletByID[id] = schema
}

func init() {
	// Begin/End document boundary.
	registerSF([3]byte{0xD3, 0xA8, 0xA8}, "BDT", "Begin Document")
	registerSF([3]byte{0xD3, 0xA9, 0xA8}, "EDT", "End Document")

	// Begin/End named group (the document boundary the projector acts on).
	registerSF([3]byte{0xD3, 0xA8, 0xAD}, "BNG", "Begin Named Group")
	registerSF([3]byte{0xD3, 0xA9, 0xAD}, "ENG", "End Named Group")

	// Begin/End page.
	registerSF([3]byte{0xD3, 0xA8, 0xAF}, "BPG", "Begin Page")
	registerSF([3]byte{0xD3, 0xA9, 0xAF}, "EPG", "End Page")

	// Metadata-bearing SFs the projector cares about.
	registerSF([3]byte{0xD3, 0xA0, 0x90}, "TLE", "Tag Logical Element",
		Component{Name: "TRIPLETS", Length: 0, Type: TRIPLETS, Mandatory: false})
	registerSF([3]byte{0xD3, 0xEE, 0xEE}, "NOP", "No Operation",
		Component{Name: "UndfData", Length: 0, Type: CHAR, Mandatory: false})
	registerSF([3]byte{0xD3, 0xAB, 0xCC}, "IMM", "Invoke Medium Map",
		Component{Name: "MMPName", Length: 7, Type: CHAR, Mandatory: false})

	// Remaining common MO:DCA structured fields, recorded for completeness
	// but not projected: the decoder catalogs them under their short name
	// and a default (HEXA, length 0) payload schema.
	otherSFs := []struct {
		id         [3]byte
		short      string
		long       string
	}{
		{[3]byte{0xD3, 0xA8, 0xC9}, "BDI", "Begin Document Index"},
		{[3]byte{0xD3, 0xA9, 0xC9}, "EDI", "End Document Index"},
		{[3]byte{0xD3, 0xA8, 0xCA}, "BCA", "Begin Color Attribute Table"},
		{[3]byte{0xD3, 0xA9, 0xCA}, "ECA", "End Color Attribute Table"},
		{[3]byte{0xD3, 0xA8, 0xC4}, "BDG", "Begin Document Environment Group"},
		{[3]byte{0xD3, 0xA9, 0xC4}, "EDG", "End Document Environment Group"},
		{[3]byte{0xD3, 0xA8, 0x5F}, "BPM", "Begin Page Segment"},
		{[3]byte{0xD3, 0xA9, 0x5F}, "EPM", "End Page Segment"},
		{[3]byte{0xD3, 0xA8, 0x92}, "BCF", "Begin Coded Font"},
		{[3]byte{0xD3, 0xA9, 0x92}, "ECF", "End Coded Font"},
		{[3]byte{0xD3, 0xA8, 0x91}, "BFM", "Begin Form Map"},
		{[3]byte{0xD3, 0xA9, 0x91}, "EFM", "End Form Map"},
		{[3]byte{0xD3, 0xA8, 0x6B}, "BOC", "Begin Object Container"},
		{[3]byte{0xD3, 0xA9, 0x6B}, "EOC", "End Object Container"},
		{[3]byte{0xD3, 0xA8, 0xC7}, "BAG", "Begin Active Environment Group"},
		{[3]byte{0xD3, 0xA9, 0xC7}, "EAG", "End Active Environment Group"},
		{[3]byte{0xD3, 0xA8, 0x77}, "BDA", "Begin Data"},
		{[3]byte{0xD3, 0xA9, 0x77}, "EDA", "End Data"},
		{[3]byte{0xD3, 0xA8, 0x89}, "BFG", "Begin Form Environment Group"},
		{[3]byte{0xD3, 0xA9, 0x89}, "EFG", "End Form Environment Group"},
		{[3]byte{0xD3, 0xA8, 0x8A}, "BFN", "Begin Font Resource"},
		{[3]byte{0xD3, 0xA9, 0x8A}, "EFN", "End Font Resource"},
		{[3]byte{0xD3, 0xA8, 0x7B}, "BIM", "Begin Image Object"},
		{[3]byte{0xD3, 0xA9, 0x7B}, "EIM", "End Image Object"},
		{[3]byte{0xD3, 0xA8, 0xEB}, "BMM", "Begin Medium Map"},
		{[3]byte{0xD3, 0xA9, 0xEB}, "EMM", "End Medium Map"},
		{[3]byte{0xD3, 0xA8, 0xDF}, "BMO", "Begin Overlay"},
		{[3]byte{0xD3, 0xA9, 0xDF}, "EMO", "End Overlay"},
		{[3]byte{0xD3, 0xA8, 0x9C}, "BOG", "Begin Object Environment Group"},
		{[3]byte{0xD3, 0xA9, 0x9C}, "EOG", "End Object Environment Group"},
		{[3]byte{0xD3, 0xA8, 0x9B}, "BPS", "Begin Presentation Text"},
		{[3]byte{0xD3, 0xA9, 0x9B}, "EPS", "End Presentation Text"},
		{[3]byte{0xD3, 0xA8, 0xD9}, "BRG", "Begin Resource Group"},
		{[3]byte{0xD3, 0xA9, 0xD9}, "ERG", "End Resource Group"},
		{[3]byte{0xD3, 0xA8, 0xC6}, "BRS", "Begin Resource"},
		{[3]byte{0xD3, 0xA9, 0xC6}, "ERS", "End Resource"},
		{[3]byte{0xD3, 0xA8, 0x90}, "BSG", "Begin Resource Environment Group"},
		{[3]byte{0xD3, 0xA9, 0x90}, "ESG", "End Resource Environment Group"},
		{[3]byte{0xD3, 0xA6, 0x8A}, "CFC", "Coded Font Control"},
		{[3]byte{0xD3, 0xA6, 0x92}, "CTC", "Coded Font Index"},
		{[3]byte{0xD3, 0xA6, 0x89}, "FNC", "Font Control"},
		{[3]byte{0xD3, 0xA6, 0x8C}, "FNG", "Font Index"},
		{[3]byte{0xD3, 0xB1, 0x7B}, "IOB", "Image Output Control"},
		{[3]byte{0xD3, 0xAF, 0x7B}, "IPO", "Include Page Overlay"},
		{[3]byte{0xD3, 0xA2, 0xCA}, "LLE", "Link Logical Element"},
		{[3]byte{0xD3, 0xA6, 0xC3}, "MFC", "Map Coded Font"},
		{[3]byte{0xD3, 0xA6, 0x6B}, "OBD", "Object Area Descriptor"},
		{[3]byte{0xD3, 0xA6, 0x8B}, "PFC", "Presentation Fidelity Control"},
		{[3]byte{0xD3, 0xAB, 0x89}, "MCC", "Medium Copy Count"},
		{[3]byte{0xD3, 0xA7, 0x9E}, "MDR", "Medium Descriptor"},
		{[3]byte{0xD3, 0xAB, 0x9E}, "MPO", "Medium Orientation"},
		{[3]byte{0xD3, 0xA6, 0x9E}, "MPS", "Medium Presentation Space"},
		{[3]byte{0xD3, 0xA9, 0x6C}, "PGD", "Page Descriptor"},
		{[3]byte{0xD3, 0xAB, 0x6C}, "PGP", "Page Position"},
		{[3]byte{0xD3, 0xA7, 0x6C}, "PEC", "Page Environment Control"},
	}
	for _, e := range otherSFs {
		registerSF(e.id, e.short, e.long)
	}

	registerTriplet(0x01, "GCSGID_CPGID_CCSID", "Coded Graphic Character Set ID",
		Component{Name: "id_1", Length: 2, Type: CODE, Mandatory: true},
		Component{Name: "id_2", Length: 1, Type: CODE, Mandatory: true},
	)
	registerTriplet(0x02, "FQN", "Fully Qualified Name",
		Component{Name: "fqn_type", Length: 1, Type: PARAM, Mandatory: true},
		Component{Name: "fqn_fmt", Length: 1, Type: PARAM, Mandatory: true},
		Component{Name: "fqn_name", Length: 0, Type: GID, Mandatory: true},
	)
	registerTriplet(0x36, "AttrVal", "Attribute Value",
		Component{Name: "reserved", Length: 2, Type: RESERVED, Mandatory: false},
		Component{Name: "att_val", Length: 0, Type: CHAR, Mandatory: true},
	)

	otherTriplets := []struct {
		id    byte
		short string
		long  string
	}{
		{0x03, "ImageResolution", "Image Resolution"},
		{0x04, "ObjectFunctionSet", "Object Function Set"},
		{0x05, "ObjectOffset", "Object Offset"},
		{0x06, "DataObjectFontDescriptor", "Data Object Font Descriptor"},
		{0x08, "CodedGraphicCharacterSetIdent", "Coded Graphic Character Set"},
		{0x09, "ObjectClassification", "Object Classification"},
		{0x0A, "MODCAInterchangeSet", "MO:DCA Interchange Set"},
		{0x0B, "FontDescriptorSpecification", "Font Descriptor Specification"},
		{0x0C, "ObjectFunctionSetSpec", "Object Function Set Specification"},
		{0x0E, "LinkedFont", "Linked Font"},
		{0x10, "FontPatternsMapCodedFont", "Coded Font Patterns Map"},
		{0x11, "UP3iFinishingOperation", "Finishing Operation"},
		{0x1D, "ToneTransferCurve", "Tone Transfer Curve"},
		{0x1F, "Comment", "Comment"},
		{0x21, "MediumOrientation", "Medium Orientation"},
		{0x22, "ResourceUsageAttribute", "Resource Usage Attribute"},
		{0x23, "MeasurementUnits", "Measurement Units"},
		{0x24, "ObjectAreaSize", "Object Area Size"},
		{0x25, "AreaDefinition", "Area Definition"},
		{0x26, "ColorSpecification", "Color Specification"},
		{0x2D, "EncodingSchemeID", "Encoding Scheme Identification"},
		{0x2E, "MediaEyeCatcher", "Media Eye Catcher"},
		{0x33, "ColorFidelity", "Color Fidelity"},
		{0x34, "FontResolutionMetricTechnology", "Font Resolution and Metric Technology"},
		{0x35, "FontResolutionMetric", "Font Resolution and Metric"},
		{0x3A, "DeviceAppearance", "Device Appearance"},
		{0x43, "InvokeCmr", "Invoke CMR"},
		{0x4B, "PresentationSpaceResetMixing", "Presentation Space Reset Mixing"},
		{0x4C, "PresentationSpaceMixingRule", "Presentation Space Mixing Rule"},
		{0x4D, "UniversalDateAndTimeStamp", "Universal Date and Time Stamp"},
		{0x50, "ObjectContainerPresentationSpaceSize", "Object Container Presentation Space Size"},
		{0x56, "CMRTagFidelity", "CMR Tag Fidelity"},
		{0x57, "ImageDataDescriptor", "Image Data Descriptor"},
		{0x58, "FontFQN", "Font Fully Qualified Name"},
		{0x59, "MappingOption", "Mapping Option"},
		{0x5A, "FontHeaderFQN", "Font Header Fully Qualified Name"},
		{0x5D, "ObjectContainerDataLength", "Object Container Data Length"},
		{0x62, "ColorManagementResourceDescriptor", "Color Management Resource Descriptor"},
		{0x65, "RenderingIntent", "Rendering Intent"},
		{0x68, "CMRDescriptor", "Color Management Resource Descriptor"},
		{0x6C, "DeviceAppearanceRepeat", "Device Appearance Repeating"},
		{0x70, "FullyQualifiedNameFormat", "Fully Qualified Name Format"},
		{0x75, "AttributeQualifier", "Attribute Qualifier"},
		{0x7C, "PatternDataDigest", "Pattern Data Digest"},
		{0x80, "MetricAdjustment", "Metric Adjustment"},
		{0x85, "ColorSpecification2", "Color Specification (extended)"},
		{0x8B, "TextOrientation", "Text Orientation"},
		{0x91, "FontSetupTable", "Font Setup Table"},
		{0x95, "InvokeDataObjectResource", "Invoke Data Object Resource"},
		{0x9C, "PresentationSpaceBoundary", "Presentation Space Boundary"},
		{0xA1, "MediaOrigin", "Media Origin"},
	}
	for _, e := range otherTriplets {
		registerTriplet(e.id, e.short, e.long)
	}
}

// LookupSF returns the catalog entry for a 3-byte structured-field ID.
// ok is false for anything not registered above -- callers must fall back to
// the "NA" short name and raw-hex payload rule themselves.
func LookupSF(id [3]byte) (schema SFSchema, ok bool) {
	schema, ok = sfByID[id]
	return
}

// LookupTriplet returns the catalog entry for a 1-byte triplet ID.
func LookupTriplet(id byte) (schema TripletSchema, ok bool) {
	schema, ok = tripletByID[id]
	return
}

// DefaultSFSchema is the (HEXA, length 0) shape used for any SF registered
// without an explicit component list.
func DefaultSFSchema() SFSchema { return defaultSFSchema }

// DefaultTripletSchema mirrors DefaultSFSchema for triplets.
func DefaultTripletSchema() TripletSchema { return defaultTripletSchema }
