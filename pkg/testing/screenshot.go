package testing

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// TestingT is the subset of *testing.T used by CheckRenderSnapshot,
// allowing test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// GetRGBAImage renders the tree and returns the pixels. Alias of
// Render under the name snapshot code uses.
func (h *Harness) GetRGBAImage() *image.RGBA {
	return h.Render()
}

// GetImageDiff returns a per-pixel absolute difference image, or nil
// when the images match exactly. Differing bounds count as a full
// mismatch.
func GetImageDiff(a, b *image.RGBA) *image.RGBA {
	if a.Bounds() != b.Bounds() {
		diff := image.NewRGBA(a.Bounds())
		for i := range diff.Pix {
			diff.Pix[i] = 0xFF
		}
		return diff
	}

	diff := image.NewRGBA(a.Bounds())
	same := true
	for i := range a.Pix {
		var d uint8
		if a.Pix[i] > b.Pix[i] {
			d = a.Pix[i] - b.Pix[i]
		} else {
			d = b.Pix[i] - a.Pix[i]
		}
		if d != 0 {
			same = false
		}
		diff.Pix[i] = d
	}
	// Force full alpha so the diff is viewable.
	for i := 3; i < len(diff.Pix); i += 4 {
		diff.Pix[i] = 0xFF
	}
	if same {
		return nil
	}
	return diff
}

// CheckRenderSnapshot renders the tree and compares it against the
// golden file screenshots/<name>.png under the module root.
//
// On mismatch the fresh render is written next to the golden file as
// <name>.new.png together with a <name>.diff.png highlighting changed
// pixels. Setting MASON_UPDATE_SCREENSHOTS=1 rewrites the golden file
// instead of failing.
func (h *Harness) CheckRenderSnapshot(t TestingT, name string) {
	t.Helper()

	root, err := ModuleRoot()
	if err != nil {
		t.Fatalf("locating module root: %v", err)
		return
	}
	dir := filepath.Join(root, "screenshots")
	refPath := filepath.Join(dir, name+".png")
	newPath := filepath.Join(dir, name+".new.png")
	diffPath := filepath.Join(dir, name+".diff.png")

	got := h.Render()

	if os.Getenv("MASON_UPDATE_SCREENSHOTS") == "1" {
		if err := writePNG(refPath, got); err != nil {
			t.Fatalf("updating screenshot: %v", err)
			return
		}
		os.Remove(newPath)
		os.Remove(diffPath)
		return
	}

	want, err := readPNG(refPath)
	if err != nil {
		if os.IsNotExist(err) {
			if werr := writePNG(newPath, got); werr != nil {
				t.Fatalf("writing %s: %v", newPath, werr)
				return
			}
			t.Errorf("screenshot %s missing; wrote %s\n\nTo accept: MASON_UPDATE_SCREENSHOTS=1 go test -run %s", refPath, newPath, t.Name())
			return
		}
		t.Fatalf("reading %s: %v", refPath, err)
		return
	}

	diff := GetImageDiff(want, got)
	if diff == nil {
		os.Remove(newPath)
		os.Remove(diffPath)
		return
	}
	if err := writePNG(newPath, got); err != nil {
		t.Fatalf("writing %s: %v", newPath, err)
		return
	}
	if err := writePNG(diffPath, diff); err != nil {
		t.Fatalf("writing %s: %v", diffPath, err)
		return
	}
	t.Errorf("screenshot %s differs; wrote %s and %s\n\nTo accept: MASON_UPDATE_SCREENSHOTS=1 go test -run %s", refPath, newPath, diffPath, t.Name())
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func readPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	rgba := image.NewRGBA(img.Bounds())
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}
	return rgba, nil
}
