package raildiagram

import (
	"bytes"
	"encoding/gob"

	"golang.org/x/xerrors"
)

func init() {
	gob.RegisterName("raildiagram.Skip", &Skip{})
	gob.RegisterName("raildiagram.Terminal", &Terminal{})
	gob.RegisterName("raildiagram.NonTerminal", &NonTerminal{})
	gob.RegisterName("raildiagram.Comment", &Comment{})
	gob.RegisterName("raildiagram.Sequence", &Sequence{})
	gob.RegisterName("raildiagram.Stack", &Stack{})
	gob.RegisterName("raildiagram.Choice", &Choice{})
	gob.RegisterName("raildiagram.Optional", &Optional{})
	gob.RegisterName("raildiagram.OneOrMore", &OneOrMore{})
	gob.RegisterName("raildiagram.ZeroOrMore", &ZeroOrMore{})
	gob.RegisterName("raildiagram.Barrier", &Barrier{})
	gob.RegisterName("raildiagram.Group", &Group{})
}

// container lets gob encode/decode the Node interface value itself, since
// gob cannot serialize an interface at the top level without a concrete
// wrapper.
type container struct {
	Root Node
}

// Serialize encodes a tree for transport or caching between processes. The
// tree is never shared observably by the core itself (§3.1: "the tree is a
// tree, not a DAG"), so round-tripping through Serialize/Deserialize is the
// supported way to hand a diagram to another process or goroutine.
func Serialize(n Node) (_ []byte, err error) {
	defer func() {
		if err != nil {
			err = xerrors.Errorf("serialize diagram: %w", err)
		}
	}()
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(container{Root: n}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize decodes bytes produced by Serialize into out, which must be
// a non-nil *Node.
func Deserialize(b []byte, out *Node) (err error) {
	defer func() {
		if err != nil {
			err = xerrors.Errorf("deserialize diagram: %w", err)
		}
	}()
	var c container
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&c); err != nil {
		return err
	}
	*out = c.Root
	return nil
}
