package evergreen

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestImage(t *testing.T, dir, name string, encode func(*bytes.Buffer, image.Image) error) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func encodePNG(b *bytes.Buffer, img image.Image) error  { return png.Encode(b, img) }
func encodeJPEG(b *bytes.Buffer, img image.Image) error { return jpeg.Encode(b, img, nil) }

func TestDecodePhoto(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 5, 7))); err != nil {
		t.Fatal(err)
	}
	img, err := DecodePhoto(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 7 {
		t.Errorf("bounds = %v", b)
	}
	if _, err := DecodePhoto(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestLoadPhotos(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestImage(t, dir, "a.png", encodePNG),
		filepath.Join(dir, "missing.png"),
		writeTestImage(t, dir, "b.jpg", encodeJPEG),
	}
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	paths = append(paths, bad)

	results := LoadPhotos(context.Background(), paths)
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	wantOK := []bool{true, false, true, false}
	for i, r := range results {
		if (r.Err == nil) != wantOK[i] {
			t.Errorf("result %d (%s): err = %v", i, r.Name, r.Err)
		}
		if r.Name != filepath.Base(paths[i]) {
			t.Errorf("result %d name = %q", i, r.Name)
		}
	}

	w := NewPhotoWall(DefaultConfig().Photos, nil)
	failed := AddPhotos(w, results)
	if len(failed) != 2 || w.Len() != 2 {
		t.Errorf("failed=%d added=%d", len(failed), w.Len())
	}
	if w.Items()[0].Name != "a.png" || w.Items()[1].Name != "b.jpg" {
		t.Errorf("names = %s, %s", w.Items()[0].Name, w.Items()[1].Name)
	}
}

func TestLoadPhotosCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "a.png", encodePNG)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := LoadPhotos(ctx, []string{path, path})
	for i, r := range results {
		if r.Err == nil {
			t.Errorf("result %d decoded despite cancelled context", i)
		}
	}
}
