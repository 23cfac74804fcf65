package shell

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/onyx-dot-app/onyx-desktop/common"
)

func TestTrayIconUsesBundledAsset(t *testing.T) {
	icon := TrayIcon()
	if !bytes.Equal(icon, trayAsset) {
		t.Error("bundled asset should be served when it decodes")
	}
	img, err := png.Decode(bytes.NewReader(icon))
	if err != nil {
		t.Fatalf("bundled icon is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != common.TrayIconSize || b.Dy() != common.TrayIconSize {
		t.Errorf("bundled icon is %dx%d, want %dx%d", b.Dx(), b.Dy(), common.TrayIconSize, common.TrayIconSize)
	}
}

func TestTrayIconFallsBackToGenerated(t *testing.T) {
	icon := trayIconFrom([]byte("not a png"))
	if _, err := png.Decode(bytes.NewReader(icon)); err != nil {
		t.Fatalf("fallback icon is not a PNG: %v", err)
	}
	if !bytes.Equal(icon, GenerateTrayIcon()) {
		t.Error("fallback should be the generated icon")
	}
}

func TestGenerateTrayIcon(t *testing.T) {
	for _, tt := range []struct {
		name string
		data []byte
	}{
		{"color", GenerateTrayIcon()},
		{"template", GenerateTrayTemplateIcon()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			img, err := png.Decode(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("generated icon is not a PNG: %v", err)
			}
			bounds := img.Bounds()
			if bounds.Dx() != common.TrayIconSize || bounds.Dy() != common.TrayIconSize {
				t.Errorf("icon is %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), common.TrayIconSize, common.TrayIconSize)
			}
		})
	}
}

func TestTemplateIconIsMonochrome(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(GenerateTrayTemplateIcon()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	bounds := img.Bounds()
	opaque := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			opaque++
			if r != 0 || g != 0 || b != 0 {
				t.Fatalf("template pixel (%d,%d) is not black", x, y)
			}
		}
	}
	if opaque == 0 {
		t.Error("template icon should draw a visible mark")
	}
}
