package fbxcel_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/fbxcel"
	"github.com/scigolib/fbxcel/internal/ioutil"
)

func buildSimpleFile(t *testing.T) []byte {
	t.Helper()
	m := ioutil.NewMemorySeeker()
	w, err := fbxcel.NewWriter(m, fbxcel.Version(7500))
	require.NoError(t, err)

	require.NoError(t, w.StartNode("Objects"))
	require.NoError(t, w.StartNode("Model"))
	require.NoError(t, w.WriteI32(7))
	require.NoError(t, w.WriteString("cube"))
	require.NoError(t, w.EndNode())
	require.NoError(t, w.EndNode())

	require.NoError(t, w.Finalize(context.Background()))
	return m.Bytes()
}

func TestParser_WalksWriterOutput(t *testing.T) {
	data := buildSimpleFile(t)

	p, err := fbxcel.NewParser(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, fbxcel.Version(7500), p.Version())

	ctx := context.Background()
	var names []string
	for {
		ev, err := p.NextEvent(ctx)
		require.NoError(t, err)
		if ev.Kind == fbxcel.EventNodeStart {
			names = append(names, ev.NodeStart.Name)
			loader := fbxcel.NewTypeOnlyLoader()
			for {
				ok, err := ev.NodeStart.Attrs.LoadNext(loader)
				require.NoError(t, err)
				if !ok {
					break
				}
			}
		}
		if ev.Kind == fbxcel.EventEndOfFile {
			require.NoError(t, ev.EndOfFile.FooterErr)
			break
		}
	}
	require.Equal(t, []string{"Objects", "Model"}, names)
}

func TestLoadTree_MaterializesWriterOutput(t *testing.T) {
	data := buildSimpleFile(t)

	tr, footer, err := fbxcel.LoadTree(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, fbxcel.Version(7500), footer.FBXVersion)

	root := tr.Root()
	children := root.Children()
	require.Len(t, children, 1)
	require.Equal(t, "Objects", children[0].Name())

	model := children[0].Children()
	require.Len(t, model, 1)
	require.Equal(t, "Model", model[0].Name())

	attrs := model[0].Attributes()
	require.Len(t, attrs, 2)
	require.Equal(t, int32(7), attrs[0].I32)
	require.Equal(t, "cube", attrs[1].String)
}

func TestNewParser_RejectsBadMagic(t *testing.T) {
	_, err := fbxcel.NewParser(bytes.NewReader([]byte("not an fbx file at all....")))
	require.Error(t, err)
	require.ErrorIs(t, err, fbxcel.ErrMagicNotDetected)
}

func TestWriter_RejectsUnsupportedVersion(t *testing.T) {
	m := ioutil.NewMemorySeeker()
	_, err := fbxcel.NewWriter(m, fbxcel.Version(7100))
	require.Error(t, err)
	require.ErrorIs(t, err, fbxcel.ErrUnsupportedFbxVersion)
}
