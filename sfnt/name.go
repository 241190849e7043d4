package sfnt

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Name identifier codes, per the TrueType/OpenType name table specification.
const (
	NameCopyrightNotice    = 0
	NameFontFamily         = 1
	NameFontSubfamily      = 2
	NameUniqueSubfamilyID  = 3
	NameFullName           = 4
	NameVersion            = 5
	NamePostScriptName     = 6
	NameTrademarkNotice    = 7
	NameManufacturerName   = 8
	NameDesigner           = 9
	NameDescription        = 10
	NameFontVendorURL      = 11
	NameFontDesignerURL    = 12
	NameLicenseDescription = 13
	NameLicenseInfoURL     = 14
	NamePreferredFamily    = 16
	NamePreferredSubfamily = 17
	NameCompatibleFull     = 18
	NameSampleText         = 19
)

// NameRecord is one entry of the name table: which platform/encoding/
// language it was written for, which semantic field (NameID) it carries,
// and the byte range of its raw (possibly UTF-16BE) string data.
type NameRecord struct {
	PlatformID         uint16
	PlatformSpecificID uint16
	LanguageID         uint16
	NameID             uint16

	raw []byte
}

// String decodes the record's bytes to UTF-8. Platform 3 (Microsoft) and
// platform 0 (Unicode) records are UTF-16BE; platform 1 (Macintosh)
// records are returned as raw bytes, which for the common MacRoman case is
// ASCII-compatible for the printable range this module cares about.
func (r NameRecord) String() string {
	if r.PlatformID == 3 || r.PlatformID == 0 {
		s, err := decodeUTF16BE(r.raw)
		if err == nil {
			return s
		}
	}
	return string(r.raw)
}

// NameTable is the decoded name table: every name record, each pointing
// into an arena of raw string bytes owned by the table.
type NameTable struct {
	Records []NameRecord
}

// Find returns the first record matching nameID, preferring Windows/
// Unicode platforms, the way the original sfnt_find_name prefers a
// decodable platform.
func (t *NameTable) Find(nameID uint16) (NameRecord, bool) {
	var fallback *NameRecord
	for i := range t.Records {
		r := &t.Records[i]
		if r.NameID != nameID {
			continue
		}
		if r.PlatformID == 3 || r.PlatformID == 0 {
			return *r, true
		}
		if fallback == nil {
			fallback = r
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return NameRecord{}, false
}

// ReadName decodes the name table (format 0 or 1; format 1's language-tag
// records are skipped, as no component here consumes them).
func ReadName(b []byte) (*NameTable, error) {
	const op = "read name table"
	if len(b) < 6 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	c.skip(2) // format
	count := int(c.u16())
	stringOffset := int(c.u16())
	if c.len() < 12*count {
		return nil, errf(op, Truncated, nil)
	}
	if stringOffset > len(b) {
		return nil, errf(op, Truncated, nil)
	}
	arena := b[stringOffset:]

	t := &NameTable{Records: make([]NameRecord, count)}
	for i := 0; i < count; i++ {
		platformID := c.u16()
		platformSpecificID := c.u16()
		languageID := c.u16()
		nameID := c.u16()
		length := int(c.u16())
		offset := int(c.u16())
		if offset < 0 || offset+length > len(arena) {
			return nil, errf(op, Truncated, nil)
		}
		t.Records[i] = NameRecord{
			PlatformID:         platformID,
			PlatformSpecificID: platformSpecificID,
			LanguageID:         languageID,
			NameID:             nameID,
			raw:                arena[offset : offset+length],
		}
	}
	return t, nil
}

// decodeUTF16BE decodes big-endian UTF-16 bytes to a UTF-8 string, the
// same transform.NewReader pipeline the teacher's truetype/runes.go uses.
func decodeUTF16BE(b []byte) (string, error) {
	r := bytes.NewReader(b)
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	tr := transform.NewReader(r, enc.NewDecoder())
	out, err := io.ReadAll(tr)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
