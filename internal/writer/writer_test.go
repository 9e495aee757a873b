package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/scigolib/fbxcel/internal/lowlevel"
	"github.com/scigolib/fbxcel/internal/parser"
)

func TestNewWriter_RejectsUnsupportedVersion(t *testing.T) {
	m := ioutil.NewMemorySeeker()
	_, err := NewWriter(m, lowlevel.Version(7100))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnsupportedFbxVersion)
}

func TestWriter_EmptyFileRoundTripsThroughParser(t *testing.T) {
	m := ioutil.NewMemorySeeker()
	w, err := NewWriter(m, lowlevel.Version(7500))
	require.NoError(t, err)
	require.NoError(t, w.Finalize())

	p, err := parser.NewParser(bytes.NewReader(m.Bytes()))
	require.NoError(t, err)

	ev, err := p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, parser.EventEndOfFile, ev.Kind)
	require.NoError(t, ev.EndOfFile.FooterErr)
	require.Equal(t, lowlevel.Version(7500), ev.EndOfFile.Footer.FBXVersion)
}

func TestWriter_NestedNodesWithAttributesRoundTrip(t *testing.T) {
	m := ioutil.NewMemorySeeker()
	w, err := NewWriter(m, lowlevel.Version(7500))
	require.NoError(t, err)

	require.NoError(t, w.StartNode("Objects"))
	require.NoError(t, w.StartNode("Geometry"))
	require.NoError(t, w.WriteI32(1))
	require.NoError(t, w.WriteI32(2))
	require.NoError(t, w.EndNode()) // Geometry
	require.NoError(t, w.StartNode("Model"))
	require.NoError(t, w.WriteI32(3))
	require.NoError(t, w.StartNode("Properties70"))
	require.NoError(t, w.EndNode()) // Properties70
	require.NoError(t, w.EndNode()) // Model
	require.NoError(t, w.EndNode()) // Objects

	require.NoError(t, w.StartNode("Documents"))
	require.NoError(t, w.WriteI32(42))
	require.NoError(t, w.EndNode()) // Documents

	require.NoError(t, w.Finalize())

	p, err := parser.NewParser(bytes.NewReader(m.Bytes()))
	require.NoError(t, err)

	var names []string
	var ends int
	for {
		ev, err := p.NextEvent()
		require.NoError(t, err)
		switch ev.Kind {
		case parser.EventNodeStart:
			names = append(names, ev.NodeStart.Name)
			require.NoError(t, drainAttrs(ev.NodeStart.Attrs))
		case parser.EventNodeEnd:
			ends++
		case parser.EventEndOfFile:
			require.NoError(t, ev.EndOfFile.FooterErr)
			require.Equal(t, 5, ends)
			require.Equal(t, []string{"Objects", "Geometry", "Model", "Properties70", "Documents"}, names)
			return
		}
	}
}

func TestWriter_ArrayAttributeZlibRoundTrips(t *testing.T) {
	m := ioutil.NewMemorySeeker()
	w, err := NewWriter(m, lowlevel.Version(7500))
	require.NoError(t, err)

	require.NoError(t, w.StartNode("Vertices"))
	vals := make([]int32, 500)
	for i := range vals {
		vals[i] = int32(i)
	}
	require.NoError(t, w.WriteArrayI32(vals, true))
	require.NoError(t, w.EndNode())
	require.NoError(t, w.Finalize())

	p, err := parser.NewParser(bytes.NewReader(m.Bytes()))
	require.NoError(t, err)

	for {
		ev, err := p.NextEvent()
		require.NoError(t, err)
		if ev.Kind == parser.EventNodeStart {
			loader := parser.NewArrayI32Loader()
			ok, err := ev.NodeStart.Attrs.LoadNext(loader)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, vals, loader.Value)
		}
		if ev.Kind == parser.EventEndOfFile {
			return
		}
	}
}

func TestWriter_StringAndBinaryAttributes(t *testing.T) {
	m := ioutil.NewMemorySeeker()
	w, err := NewWriter(m, lowlevel.Version(7400))
	require.NoError(t, err)

	require.NoError(t, w.StartNode("Blob"))
	require.NoError(t, w.WriteString("hello, fbx"))
	require.NoError(t, w.WriteBinary([]byte{0xde, 0xad, 0xbe, 0xef}))
	require.NoError(t, w.EndNode())
	require.NoError(t, w.Finalize())

	p, err := parser.NewParser(bytes.NewReader(m.Bytes()))
	require.NoError(t, err)

	for {
		ev, err := p.NextEvent()
		require.NoError(t, err)
		if ev.Kind == parser.EventNodeStart {
			require.Equal(t, 2, ev.NodeStart.Attrs.Total())

			sLoader := parser.NewStringLoader()
			_, err := ev.NodeStart.Attrs.LoadNext(sLoader)
			require.NoError(t, err)
			require.Equal(t, "hello, fbx", sLoader.Value)

			bLoader := parser.NewBinaryLoader()
			_, err = ev.NodeStart.Attrs.LoadNext(bLoader)
			require.NoError(t, err)
			require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, bLoader.Value)
		}
		if ev.Kind == parser.EventEndOfFile {
			return
		}
	}
}

func TestWriter_FinalizeFailsWithOpenNode(t *testing.T) {
	m := ioutil.NewMemorySeeker()
	w, err := NewWriter(m, lowlevel.Version(7500))
	require.NoError(t, err)
	require.NoError(t, w.StartNode("Unclosed"))

	err = w.Finalize()
	require.Error(t, err)
	var unclosed *UnclosedNodeError
	require.ErrorAs(t, err, &unclosed)
	require.Equal(t, 1, unclosed.Depth)
}

func TestWriter_OperationsAfterFinalizeFail(t *testing.T) {
	m := ioutil.NewMemorySeeker()
	w, err := NewWriter(m, lowlevel.Version(7500))
	require.NoError(t, err)
	require.NoError(t, w.Finalize())

	require.ErrorIs(t, w.StartNode("Late"), ErrAlreadyFinalized)
	require.ErrorIs(t, w.Finalize(), ErrAlreadyFinalized)
}

func TestWriter_NodeNameTooLongRejected(t *testing.T) {
	m := ioutil.NewMemorySeeker()
	w, err := NewWriter(m, lowlevel.Version(7500))
	require.NoError(t, err)

	longName := make([]byte, 256)
	for i := range longName {
		longName[i] = 'a'
	}
	require.ErrorIs(t, w.StartNode(string(longName)), ErrNodeNameTooLong)
}

func TestWriter_EndNodeWithoutOpenNodeFails(t *testing.T) {
	m := ioutil.NewMemorySeeker()
	w, err := NewWriter(m, lowlevel.Version(7500))
	require.NoError(t, err)
	require.ErrorIs(t, w.EndNode(), ErrNoOpenNode)
}

// buildBoundaryTree writes one fixed logical tree to w, used to compare
// the narrow (pre-7500) and wide (7500+) node-header encodings.
func buildBoundaryTree(w *Writer) error {
	if err := w.StartNode("Objects"); err != nil {
		return err
	}
	if err := w.StartNode("Geometry"); err != nil {
		return err
	}
	if err := w.WriteI32(1); err != nil {
		return err
	}
	if err := w.WriteI32(2); err != nil {
		return err
	}
	if err := w.EndNode(); err != nil { // Geometry
		return err
	}
	if err := w.StartNode("Model"); err != nil {
		return err
	}
	if err := w.WriteString("cube"); err != nil {
		return err
	}
	if err := w.EndNode(); err != nil { // Model
		return err
	}
	return w.EndNode() // Objects
}

// nodeShape is the structural summary collected while walking a parsed
// file, compared across the two header widths below.
type nodeShape struct {
	name     string
	numAttrs int
}

func walkShapes(data []byte) ([]nodeShape, error) {
	p, err := parser.NewParser(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var shapes []nodeShape
	for {
		ev, err := p.NextEvent()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case parser.EventNodeStart:
			shapes = append(shapes, nodeShape{name: ev.NodeStart.Name, numAttrs: ev.NodeStart.Attrs.Total()})
			if err := drainAttrs(ev.NodeStart.Attrs); err != nil {
				return nil, err
			}
		case parser.EventEndOfFile:
			if ev.EndOfFile.FooterErr != nil {
				return nil, ev.EndOfFile.FooterErr
			}
			return shapes, nil
		}
	}
}

func TestWriter_NodeHeaderWidthBoundary_EquivalentAcrossVersions(t *testing.T) {
	narrow := ioutil.NewMemorySeeker()
	wNarrow, err := NewWriter(narrow, lowlevel.Version(7400))
	require.NoError(t, err)
	require.NoError(t, buildBoundaryTree(wNarrow))
	require.NoError(t, wNarrow.Finalize())

	wide := ioutil.NewMemorySeeker()
	wWide, err := NewWriter(wide, lowlevel.Version(7500))
	require.NoError(t, err)
	require.NoError(t, buildBoundaryTree(wWide))
	require.NoError(t, wWide.Finalize())

	narrowShapes, err := walkShapes(narrow.Bytes())
	require.NoError(t, err)
	wideShapes, err := walkShapes(wide.Bytes())
	require.NoError(t, err)

	require.Equal(t, narrowShapes, wideShapes)
	require.NotEqual(t, len(narrow.Bytes()), len(wide.Bytes()), "narrow and wide encodings should differ in byte size even though they parse equivalently")
}

func drainAttrs(c *parser.AttributeCursor) error {
	loader := parser.NewTypeOnlyLoader()
	for {
		ok, err := c.LoadNext(loader)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
