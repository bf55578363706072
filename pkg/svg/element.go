package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Element is a node of the rendered document with ordered attributes.
type Element struct {
	Name     string
	Text     string
	Children []*Element

	attrs []xml.Attr
}

// NewElement creates an element; attrs are name/value pairs.
func NewElement(name string, attrs ...string) *Element {
	e := &Element{Name: name}
	for k := 0; k+1 < len(attrs); k += 2 {
		e.Set(attrs[k], attrs[k+1])
	}
	return e
}

// Set assigns an attribute, keeping its original position when it already exists.
func (e *Element) Set(name, value string) *Element {
	for k := range e.attrs {
		if e.attrs[k].Name.Local == name {
			e.attrs[k].Value = value
			return e
		}
	}
	e.attrs = append(e.attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return e
}

// Get returns an attribute value.
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasClass reports whether the class attribute contains class.
func (e *Element) HasClass(class string) bool {
	v, _ := e.Get("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Append adds children and returns e.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// RemoveChild detaches c; it reports false when c is not a direct child.
func (e *Element) RemoveChild(c *Element) bool {
	for k, child := range e.Children {
		if child == c {
			e.Children = append(e.Children[:k:k], e.Children[k+1:]...)
			return true
		}
	}
	return false
}

// Find returns every descendant (including e) matching pred, in document order.
func (e *Element) Find(pred func(*Element) bool) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(n *Element) {
		if pred(n) {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(e)
	return out
}

// WriteTo encodes the element tree as XML.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := xml.NewEncoder(cw)
	if err := e.encode(enc); err != nil {
		return cw.n, fmt.Errorf("failed to encode %s: %w", e.Name, err)
	}
	if err := enc.Flush(); err != nil {
		return cw.n, fmt.Errorf("failed to flush markup: %w", err)
	}
	return cw.n, nil
}

// String returns the markup, or an empty string if encoding fails.
func (e *Element) String() string {
	var buf bytes.Buffer
	if _, err := e.WriteTo(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (e *Element) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}, Attr: e.attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := c.encode(enc); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
