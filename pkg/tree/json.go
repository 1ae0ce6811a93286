package tree

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/tidytree/pkg/errors"
)

// jsonNode is the wire form of a Node. The format is nested and
// human-readable, designed for round-trip fidelity:
// import → layout → export → re-import produces identical structure.
type jsonNode struct {
	Label    string      `json:"label,omitempty"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Meta     Metadata    `json:"meta,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func toJSON(n *Node) *jsonNode {
	out := &jsonNode{
		Label:  n.Label,
		Width:  n.Width,
		Height: n.Height,
		Meta:   n.Meta,
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, toJSON(c))
	}
	return out
}

func fromJSON(jn *jsonNode) *Node {
	n := &Node{
		Label:  jn.Label,
		Width:  jn.Width,
		Height: jn.Height,
		Meta:   jn.Meta,
	}
	for _, c := range jn.Children {
		n.Children = append(n.Children, fromJSON(c))
	}
	return n
}

// MarshalTree serializes a tree to pretty-printed JSON bytes.
func MarshalTree(n *Node) ([]byte, error) {
	if n == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "marshal tree: root is nil")
	}
	data, err := json.MarshalIndent(toJSON(n), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal tree")
	}
	return data, nil
}

// UnmarshalTree deserializes JSON bytes into a tree and validates it.
func UnmarshalTree(data []byte) (*Node, error) {
	var jn jsonNode
	if err := json.Unmarshal(data, &jn); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal tree")
	}
	root := fromJSON(&jn)
	if err := Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

// ReadTree reads a JSON tree from r.
func ReadTree(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read tree")
	}
	return UnmarshalTree(data)
}

// WriteTree encodes a tree as JSON and writes it to w.
func WriteTree(n *Node, w io.Writer) error {
	data, err := MarshalTree(n)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write tree")
	}
	return nil
}

// ReadTreeFile reads a tree from a JSON file.
func ReadTreeFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.ErrCodeInternal
		if os.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		return nil, errors.Wrap(code, err, "read %s", path)
	}
	return UnmarshalTree(data)
}

// WriteTreeFile writes a tree to a JSON file.
func WriteTreeFile(n *Node, path string) error {
	data, err := MarshalTree(n)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
