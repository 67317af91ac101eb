package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

type xlsxParser struct{}

func (xlsxParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Parse reads the first worksheet of a workbook. Its first row is the
// header.
func (xlsxParser) Parse(content []byte) ([]Row, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	var wb struct {
		Sheets []struct {
			Name string `xml:"name,attr"`
			RID  string `xml:"id,attr"`
		} `xml:"sheets>sheet"`
	}
	if err := decodeZipXML(zr, "xl/workbook.xml", &wb); err != nil {
		return nil, err
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("xlsx: workbook has no sheets")
	}
	var rels struct {
		Items []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := decodeZipXML(zr, "xl/_rels/workbook.xml.rels", &rels); err != nil {
		return nil, err
	}
	target := "xl/worksheets/sheet1.xml"
	for _, r := range rels.Items {
		if r.ID == wb.Sheets[0].RID {
			target = sheetPath(r.Target)
			break
		}
	}

	var shared []string
	if zipHas(zr, "xl/sharedStrings.xml") {
		var sst struct {
			Items []xlsxText `xml:"si"`
		}
		if err := decodeZipXML(zr, "xl/sharedStrings.xml", &sst); err != nil {
			return nil, err
		}
		for _, it := range sst.Items {
			shared = append(shared, it.String())
		}
	}

	var sheet struct {
		Rows []struct {
			Cells []struct {
				Ref    string   `xml:"r,attr"`
				Type   string   `xml:"t,attr"`
				Value  string   `xml:"v"`
				Inline xlsxText `xml:"is"`
			} `xml:"c"`
		} `xml:"sheetData>row"`
	}
	if err := decodeZipXML(zr, target, &sheet); err != nil {
		return nil, err
	}

	var header []string
	var rows []Row
	for _, row := range sheet.Rows {
		var vals []string
		for i, c := range row.Cells {
			col := i
			if c.Ref != "" {
				col = columnIndex(c.Ref)
			}
			v := c.Value
			switch c.Type {
			case "s":
				idx, err := strconv.Atoi(v)
				if err != nil || idx < 0 || idx >= len(shared) {
					v = ""
				} else {
					v = shared[idx]
				}
			case "inlineStr":
				v = c.Inline.String()
			}
			for len(vals) <= col {
				vals = append(vals, "")
			}
			vals[col] = strings.TrimSpace(v)
		}
		if header == nil {
			header = vals
			continue
		}
		raw := make(map[string]string, len(header))
		for i, name := range header {
			if name != "" && i < len(vals) {
				raw[name] = vals[i]
			}
		}
		rows = append(rows, canonicalRow(raw))
	}
	return rows, nil
}

// xlsxText is a plain or rich-text string item.
type xlsxText struct {
	T    string `xml:"t"`
	Runs []struct {
		T string `xml:"t"`
	} `xml:"r"`
}

func (t xlsxText) String() string {
	if len(t.Runs) == 0 {
		return t.T
	}
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.T)
	}
	return b.String()
}

func zipHas(zr *zip.Reader, name string) bool {
	for _, f := range zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

func decodeZipXML(zr *zip.Reader, name string, v any) error {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := xml.Unmarshal(b, v); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return nil
	}
	return fmt.Errorf("xlsx: missing %s", name)
}

// sheetPath resolves a workbook relationship target to its zip entry.
// Targets are relative to xl/ unless they start with a slash.
func sheetPath(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join("xl", target)
}

// columnIndex converts a cell reference such as "C12" to its 0-based column.
func columnIndex(ref string) int {
	idx := 0
	for _, c := range strings.ToUpper(ref) {
		if c < 'A' || c > 'Z' {
			break
		}
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}
