package testing

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mason/mason/pkg/widgets"
)

type fakeT struct {
	fatals []string
	errors []string
}

func (f *fakeT) Helper() {}

func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}

func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeT) Name() string { return "fakeT" }

// withModuleRoot pins the memoized module root for the duration of a
// test so snapshot files land in a temp directory.
func withModuleRoot(t *testing.T, dir string) {
	t.Helper()
	workspaceMu.Lock()
	prev := workspacePath
	workspacePath = dir
	workspaceMu.Unlock()
	t.Cleanup(func() {
		workspaceMu.Lock()
		workspacePath = prev
		workspaceMu.Unlock()
	})
}

func TestGetImageDiffIdentical(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 4, 4))
	b := image.NewRGBA(image.Rect(0, 0, 4, 4))
	a.Pix[0] = 0x80
	b.Pix[0] = 0x80
	assert.Nil(t, GetImageDiff(a, b))
}

func TestGetImageDiffHighlightsChange(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 4, 4))
	b := image.NewRGBA(image.Rect(0, 0, 4, 4))
	a.Pix[0] = 0x90
	b.Pix[0] = 0x10

	diff := GetImageDiff(a, b)
	require.NotNil(t, diff)
	assert.Equal(t, uint8(0x80), diff.Pix[0])
	// Alpha is forced opaque so the diff renders.
	assert.Equal(t, uint8(0xFF), diff.Pix[3])
}

func TestGetImageDiffBoundsMismatch(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 4, 4))
	b := image.NewRGBA(image.Rect(0, 0, 8, 8))
	assert.NotNil(t, GetImageDiff(a, b))
}

func TestModuleRootContainsGoMod(t *testing.T) {
	root, err := ModuleRoot()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, err)
}

func TestCheckRenderSnapshotMissingGolden(t *testing.T) {
	withModuleRoot(t, t.TempDir())
	h := Create(widgets.NewLabel("snapshot"))

	ft := &fakeT{}
	h.CheckRenderSnapshot(ft, "label")

	require.Empty(t, ft.fatals)
	require.Len(t, ft.errors, 1)
	root, _ := ModuleRoot()
	_, err := os.Stat(filepath.Join(root, "screenshots", "label.new.png"))
	assert.NoError(t, err)
}

func TestCheckRenderSnapshotAcceptedGolden(t *testing.T) {
	withModuleRoot(t, t.TempDir())
	h := Create(widgets.NewLabel("snapshot"))

	ft := &fakeT{}
	h.CheckRenderSnapshot(ft, "label")
	require.Len(t, ft.errors, 1)

	// Promote the fresh render to the golden file.
	root, _ := ModuleRoot()
	dir := filepath.Join(root, "screenshots")
	require.NoError(t, os.Rename(
		filepath.Join(dir, "label.new.png"),
		filepath.Join(dir, "label.png"),
	))

	ft = &fakeT{}
	h.CheckRenderSnapshot(ft, "label")
	assert.Empty(t, ft.errors)
	assert.Empty(t, ft.fatals)
	_, err := os.Stat(filepath.Join(dir, "label.new.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestCheckRenderSnapshotMismatchWritesDiff(t *testing.T) {
	withModuleRoot(t, t.TempDir())
	h := Create(widgets.NewLabel("snapshot"))

	// Golden deliberately differs from the live render.
	got := h.Render()
	got.Pix[0] ^= 0xFF
	root, _ := ModuleRoot()
	dir := filepath.Join(root, "screenshots")
	require.NoError(t, writePNG(filepath.Join(dir, "label.png"), got))

	ft := &fakeT{}
	h.CheckRenderSnapshot(ft, "label")

	require.Len(t, ft.errors, 1)
	_, err := os.Stat(filepath.Join(dir, "label.new.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "label.diff.png"))
	assert.NoError(t, err)
}

func TestCheckRenderSnapshotUpdateEnv(t *testing.T) {
	withModuleRoot(t, t.TempDir())
	t.Setenv("MASON_UPDATE_SCREENSHOTS", "1")
	h := Create(widgets.NewLabel("snapshot"))

	ft := &fakeT{}
	h.CheckRenderSnapshot(ft, "label")

	assert.Empty(t, ft.errors)
	root, _ := ModuleRoot()
	_, err := os.Stat(filepath.Join(root, "screenshots", "label.png"))
	assert.NoError(t, err)
}
