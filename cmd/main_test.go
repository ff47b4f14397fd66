package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noders-team/go-gedcomx/pkg/codec"
	"github.com/noders-team/go-gedcomx/pkg/fileformat"
	"github.com/noders-team/go-gedcomx/pkg/model"
	"github.com/noders-team/go-gedcomx/pkg/testutil"
)

func writeSources(t *testing.T, dir string) {
	t.Helper()
	registry, err := codec.DefaultRegistry()
	require.NoError(t, err)

	resources := testutil.ExampleResources()
	sources := []struct {
		path        string
		contentType string
		resource    any
	}{
		{path: "persons/98765.xml", contentType: model.ConclusionV1XMLMediaType, resource: resources[0]},
		{path: "persons/87654.json", contentType: model.ConclusionV1JSONMediaType, resource: resources[1]},
		{path: "relationships/RRRR-F01.yaml", contentType: model.ConclusionV1YAMLMediaType, resource: resources[5]},
	}
	for _, src := range sources {
		path := filepath.Join(dir, filepath.FromSlash(src.path))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

		serializer, err := registry.Lookup(src.contentType)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, serializer.Encode(&buf, src.resource))
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("skipped"), 0o644))
}

func TestPackInspectCatUnpack(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	writeSources(t, srcDir)
	gedx := filepath.Join(dir, "family.gedx")

	require.NoError(t, runPack(srcDir, gedx, testutil.CreatedBy, "persons/98765.xml"))

	f, err := fileformat.OpenFile(gedx)
	require.NoError(t, err)
	var names []string
	for _, e := range f.Entries() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"persons/87654.json", "persons/98765.xml", "relationships/RRRR-F01.yaml", "META-INF/MANIFEST.MF"}, names)
	rootEntry, ok := f.Entry("persons/98765.xml")
	require.True(t, ok)
	v, _ := rootEntry.Attribute(gxRootAttr)
	assert.Equal(t, "true", v)
	_, ok = rootEntry.Attribute(dcModifiedAttr)
	assert.True(t, ok)
	require.NoError(t, f.Close())

	var out bytes.Buffer
	require.NoError(t, runInspect(&out, gedx))
	assert.Contains(t, out.String(), "  Created-By: FamilySearch Platform API 0.1\n")
	assert.Contains(t, out.String(), "    Content-Type: application/x-gedcomx-conclusion-v1+yaml\n")
	assert.Contains(t, out.String(), "    GX-Root: true\n")

	out.Reset()
	require.NoError(t, runCat(&out, gedx, "persons/98765.xml", model.ConclusionV1JSONMediaType))
	assert.Contains(t, out.String(), `"gx:person"`)
	assert.Contains(t, out.String(), `"fullText": "Israel Heaton"`)

	out.Reset()
	require.NoError(t, runCat(&out, gedx, `\relationships\RRRR-F01.yaml`, model.ConclusionV1XMLMediaType))
	assert.Contains(t, out.String(), `<relationship xmlns="http://gedcomx.org/conclusion/v1/" id="RRRR-F01"`)

	assert.Error(t, runCat(&out, gedx, "persons/missing", model.ConclusionV1JSONMediaType))
	assert.ErrorIs(t, runCat(&out, gedx, "persons/98765.xml", "text/plain"), codec.ErrUnknownContentType)

	unpacked := filepath.Join(dir, "unpacked")
	require.NoError(t, runUnpack(gedx, unpacked))
	_, err = os.Stat(filepath.Join(unpacked, "META-INF", "MANIFEST.MF"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(unpacked, "persons", "87654.json"))
	assert.NoError(t, err)
}

func TestPack_InvalidSource(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "broken.json"), []byte(`{"gx:unknown": {}}`), 0o644))

	err := runPack(srcDir, filepath.Join(dir, "out.gedx"), "", "")
	assert.ErrorIs(t, err, codec.ErrUnknownResourceType)
}

func TestRootCmd(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"inspect", "cat", "pack", "unpack"} {
		assert.True(t, names[name], name)
	}
}
