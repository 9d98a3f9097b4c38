package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

const sample = `
[[assets]]
path = "Assets/master.png"
label = "master"
content = "m"

[[assets]]
path = "Assets/dup.png"
file = "dup.bin"

[[consumers]]
id = "Body"

  [[consumers.slots]]
  name = "_MainTex"
  asset = "Assets/dup.png"

  [[consumers.slots]]
  name = "_BumpMap"
`

type recorder struct {
	assets    map[string][]byte
	labels    map[string]string
	consumers map[domain.ConsumerID][]domain.Slot
}

func newRecorder() *recorder {
	return &recorder{
		assets:    map[string][]byte{},
		labels:    map[string]string{},
		consumers: map[domain.ConsumerID][]domain.Slot{},
	}
}

func (r *recorder) PutAsset(_ context.Context, path, label string, content []byte) error {
	r.assets[path] = content
	r.labels[path] = label
	return nil
}

func (r *recorder) PutConsumer(_ context.Context, id domain.ConsumerID, slots []domain.Slot) error {
	r.consumers[id] = slots
	return nil
}

func (r *recorder) ListConsumers(_ context.Context) ([]domain.ConsumerID, error) {
	ids := make([]domain.ConsumerID, 0, len(r.consumers))
	for id := range r.consumers {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *recorder) DropConsumer(_ context.Context, id domain.ConsumerID) error {
	delete(r.consumers, id)
	return nil
}

func TestLoad_AndApply(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dup.bin"), []byte("d"), 0600))
	path := filepath.Join(dir, "project.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0600))

	m, err := Load(path)
	require.NoError(t, err)

	rec := newRecorder()
	require.NoError(t, m.Apply(context.Background(), rec))

	assert.Equal(t, []byte("m"), rec.assets["Assets/master.png"])
	assert.Equal(t, []byte("d"), rec.assets["Assets/dup.png"])
	assert.Equal(t, "dup.png", rec.labels["Assets/dup.png"])

	slots := rec.consumers["Body"]
	require.Len(t, slots, 2)
	assert.Equal(t, domain.PropertyName("_MainTex"), slots[0].Name)
	require.NotNil(t, slots[0].Ref)
	assert.Equal(t, "Assets/dup.png", slots[0].Ref.Path)
	assert.Nil(t, slots[1].Ref)
}

func TestApply_DropsUndeclaredConsumers(t *testing.T) {
	first, err := Parse([]byte(`
[[assets]]
path = "Assets/dup.png"
content = "d"

[[consumers]]
id = "Body"
  [[consumers.slots]]
  name = "_MainTex"
  asset = "Assets/dup.png"

[[consumers]]
id = "Head"
  [[consumers.slots]]
  name = "_MainTex"
  asset = "Assets/dup.png"
`))
	require.NoError(t, err)
	second, err := Parse([]byte(`
[[assets]]
path = "Assets/dup.png"
content = "d"

[[consumers]]
id = "Head"
`))
	require.NoError(t, err)

	rec := newRecorder()
	ctx := context.Background()
	require.NoError(t, first.Apply(ctx, rec))
	require.Len(t, rec.consumers, 2)

	require.NoError(t, second.Apply(ctx, rec))

	assert.NotContains(t, rec.consumers, domain.ConsumerID("Body"))
	assert.Contains(t, rec.consumers, domain.ConsumerID("Head"))
	assert.Contains(t, rec.assets, "Assets/dup.png", "assets are never dropped by import")
}

func TestApply_MissingFile(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	err = m.Apply(context.Background(), newRecorder())

	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "syntax", data: "[[assets]\n"},
		{name: "asset without path", data: "[[assets]]\nlabel = \"x\"\n"},
		{name: "file and content", data: "[[assets]]\npath = \"a\"\nfile = \"f\"\ncontent = \"c\"\n"},
		{name: "duplicate asset", data: "[[assets]]\npath = \"a\"\n[[assets]]\npath = \"a\"\n"},
		{name: "consumer without id", data: "[[consumers]]\n"},
		{name: "duplicate consumer", data: "[[consumers]]\nid = \"c\"\n[[consumers]]\nid = \"c\"\n"},
		{name: "duplicate slot", data: "[[consumers]]\nid = \"c\"\n[[consumers.slots]]\nname = \"s\"\n[[consumers.slots]]\nname = \"s\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestParseGroups(t *testing.T) {
	groups, err := ParseGroups([]byte(`
[[groups]]
master = "Assets/master.png"
duplicates = ["Assets/a.png", "Assets/b.png"]
`))
	require.NoError(t, err)

	require.Len(t, groups, 1)
	assert.Equal(t, "Assets/master.png", groups[0].Master)
	assert.Equal(t, []string{"Assets/a.png", "Assets/b.png"}, groups[0].Duplicates)
}

func TestParseGroups_MissingMaster(t *testing.T) {
	_, err := ParseGroups([]byte("[[groups]]\nduplicates = [\"a\"]\n"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEncodeGroups_RoundTrip(t *testing.T) {
	in := []GroupEntry{{Master: "m", Duplicates: []string{"a", "b"}}}

	data, err := EncodeGroups(in)
	require.NoError(t, err)
	out, err := ParseGroups(data)
	require.NoError(t, err)

	assert.Equal(t, in, out)
}
