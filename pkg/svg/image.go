package svg

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/texsvg/pkg/errors"
)

// Attribute names read and written by [Image.Scale].
const (
	AttrWidth  = "width"
	AttrHeight = "height"
	AttrStyle  = "style"
)

// Image is a rendered math image rooted at an element node.
// Scale mutates the underlying tree in place.
type Image struct {
	node *html.Node
}

// NewImage wraps root, which must be an element node.
func NewImage(root *html.Node) (*Image, error) {
	if root == nil || root.Type != html.ElementNode {
		return nil, errors.New(errors.ErrCodeMalformedRenderOutput, "render output has no root element")
	}
	return &Image{node: root}, nil
}

// Node returns the root element.
func (img *Image) Node() *html.Node { return img.node }

// Attr returns the value of the named attribute of the root element.
func (img *Image) Attr(name string) (string, bool) {
	for _, a := range img.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute of the root element, keeping its position
// when it already exists.
func (img *Image) SetAttr(name, value string) {
	for i, a := range img.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			img.node.Attr[i].Val = value
			return
		}
	}
	img.node.Attr = append(img.node.Attr, html.Attribute{Key: name, Val: value})
}

// Style parses the inline style attribute of the root element.
func (img *Image) Style() Style {
	s, _ := img.Attr(AttrStyle)
	return ParseStyle(s)
}

// Width returns the declared width.
func (img *Image) Width() (Length, error) { return img.lengthAttr(AttrWidth) }

// Height returns the declared height.
func (img *Image) Height() (Length, error) { return img.lengthAttr(AttrHeight) }

// VerticalAlign returns the vertical-align style property, which may be negative.
func (img *Image) VerticalAlign() (Length, error) {
	v, ok := img.Style().Get(PropVerticalAlign)
	if !ok {
		return Length{}, errors.New(errors.ErrCodeMalformedRenderOutput, "render output has no %s style", PropVerticalAlign)
	}
	return ParseLength(v, true)
}

func (img *Image) lengthAttr(name string) (Length, error) {
	v, ok := img.Attr(name)
	if !ok {
		return Length{}, errors.New(errors.ErrCodeMalformedRenderOutput, "render output has no %s attribute", name)
	}
	return ParseLength(v, false)
}

// Scale multiplies width, height and vertical-align by k and regenerates the
// style attribute from the full declaration list. Nothing is modified unless
// all three measurements are well formed.
func (img *Image) Scale(k float64) error {
	w, err := img.Width()
	if err != nil {
		return err
	}
	h, err := img.Height()
	if err != nil {
		return err
	}
	va, err := img.VerticalAlign()
	if err != nil {
		return err
	}

	style := img.Style()
	style.Set(PropVerticalAlign, va.Scale(k).String())

	img.SetAttr(AttrWidth, w.Scale(k).String())
	img.SetAttr(AttrHeight, h.Scale(k).String())
	img.SetAttr(AttrStyle, style.CSSText())
	return nil
}

// String serializes the root element and its subtree.
func (img *Image) String() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, img.node); err != nil {
		return "", errors.Wrap(errors.ErrCodeMalformedRenderOutput, err, "serialize render output")
	}
	return buf.String(), nil
}

// Rescale scales root by k and returns its serialized markup.
// k must be finite and positive; 1.0 leaves every magnitude unchanged.
func Rescale(root *html.Node, k float64) (string, error) {
	if err := errors.ValidateScale(k); err != nil {
		return "", err
	}
	img, err := NewImage(root)
	if err != nil {
		return "", err
	}
	if err := img.Scale(k); err != nil {
		return "", err
	}
	return img.String()
}

// ParseFragment parses markup as it would appear inside an HTML body and
// returns its top-level nodes. Inline <svg> elements are parsed as SVG
// foreign content, so attribute names like viewBox keep their case.
func ParseFragment(markup string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedRenderOutput, err, "parse render output")
	}
	return nodes, nil
}

// FirstElement returns the first element child of parent, or nil.
func FirstElement(parent *html.Node) *html.Node {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}
