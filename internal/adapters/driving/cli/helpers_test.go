package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/consolidator/internal/adapters/driven/config/file"
	"github.com/custodia-labs/consolidator/internal/adapters/driven/identity"
	"github.com/custodia-labs/consolidator/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/services"
)

const (
	masterPath = "Assets/master.png"
	dupXPath   = "Assets/dup_x.png"
	dupYPath   = "Assets/dup_y.png"
)

// setupTestServices wires the commands to an in-memory project:
// C1._MainTex -> dup_x, C1._Detail -> master, C2._MainTex -> dup_y.
func setupTestServices(t *testing.T) *memory.Host {
	t.Helper()

	host := memory.NewHost()
	host.AddAsset(masterPath, "master", []byte("tex"))
	host.AddAsset(dupXPath, "dup_x", []byte("tex"))
	host.AddAsset(dupYPath, "dup_y", []byte("tex"))
	host.AddConsumer("C1",
		domain.Slot{Name: "_MainTex", Ref: &domain.AssetReference{Path: dupXPath}},
		domain.Slot{Name: "_Detail", Ref: &domain.AssetReference{Path: masterPath}},
	)
	host.AddConsumer("C2",
		domain.Slot{Name: "_MainTex", Ref: &domain.AssetReference{Path: dupYPath}},
	)

	cfg, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	svc := services.NewConsolidationService(host, host, identity.NewPathResolver(), memory.NewRunStore())
	SetServices(svc, host, cfg)

	t.Cleanup(func() {
		SetServices(nil, nil, nil)
		groupsFile = ""
		groupMaster = ""
		groupDuplicates = nil
		deleteYes = false
		assetsJSON = false
		historyJSON = false
		historyLimit = 20
		suggestWrite = ""
		importWatch = false
		rootCmd.SetIn(nil)
	})
	return host
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func slotPath(t *testing.T, host *memory.Host, consumer domain.ConsumerID, prop domain.PropertyName) string {
	t.Helper()

	ref, err := host.GetSlot(context.Background(), consumer, prop)
	require.NoError(t, err)
	if ref == nil {
		return ""
	}
	return ref.Path
}

func hostPaths(t *testing.T, host *memory.Host) []string {
	t.Helper()

	records, err := host.List(context.Background())
	require.NoError(t, err)
	paths := make([]string, 0, len(records))
	for _, r := range records {
		paths = append(paths, r.Ref.Path)
	}
	return paths
}
