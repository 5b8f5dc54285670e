// Package svg decodes SVG documents into transformed path data.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/net/html/charset"

	"geovec/internal/svgpath"
)

// Path is one path element with its composed transform and the
// presentation attributes it carried.
type Path struct {
	Data      svgpath.Path
	Transform svgpath.Matrix
	Attrs     map[string]string
}

// Document is a decoded SVG document.
type Document struct {
	Width, Height float64
	ViewBox       [4]float64 // min-x, min-y, width, height
	HasViewBox    bool
	Paths         []Path
}

// Decode reads an SVG document, collecting every path element along
// with the transform composed from its ancestor chain. Elements other
// than svg, g and path are tolerated and skipped.
func Decode(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	doc := &Document{}
	stack := []svgpath.Matrix{svgpath.Identity}
	sawRoot := false
	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("svg: %w", err)
		}
		switch se := tok.(type) {
		case xml.StartElement:
			m := stack[len(stack)-1]
			if v, ok := attrValue(se, "transform"); ok {
				t, err := svgpath.ParseTransform(v)
				if err != nil {
					return nil, fmt.Errorf("svg: %s element: %w", se.Name.Local, err)
				}
				m = m.Mult(t)
			}
			stack = append(stack, m)

			switch se.Name.Local {
			case "svg":
				if sawRoot {
					break
				}
				sawRoot = true
				if v, ok := attrValue(se, "width"); ok {
					doc.Width = dimension(v)
				}
				if v, ok := attrValue(se, "height"); ok {
					doc.Height = dimension(v)
				}
				if v, ok := attrValue(se, "viewBox"); ok {
					fields := strings.Fields(strings.ReplaceAll(v, ",", " "))
					if len(fields) == 4 {
						full := true
						for i, f := range fields {
							num, n := strconv.ParseFloat([]byte(f))
							if n != len(f) {
								full = false
								break
							}
							doc.ViewBox[i] = num
						}
						doc.HasViewBox = full
					}
				}
			case "path":
				v, ok := attrValue(se, "d")
				if !ok {
					break
				}
				data, err := svgpath.Parse(v)
				if err != nil {
					return nil, fmt.Errorf("svg: path %d: %w", len(doc.Paths), err)
				}
				attrs := make(map[string]string)
				for _, a := range se.Attr {
					if a.Name.Local == "d" || a.Name.Local == "transform" {
						continue
					}
					attrs[a.Name.Local] = a.Value
				}
				doc.Paths = append(doc.Paths, Path{Data: data, Transform: m, Attrs: attrs})
			}
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return doc, nil
}

func attrValue(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// dimension parses the leading number of a length, ignoring any unit
// suffix such as px or pt.
func dimension(v string) float64 {
	num, n := strconv.ParseFloat([]byte(strings.TrimSpace(v)))
	if n == 0 {
		return 0
	}
	return num
}
