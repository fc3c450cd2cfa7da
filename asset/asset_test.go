package asset

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hutsulruslan/arplace"
)

const crateJSON = `{
	"name": "crate",
	"nodes": [
		{
			"name": "body",
			"position": [0, 0.25, 0],
			"halfExtent": [0.25, 0.25, 0.25],
			"color": "#b5651d"
		},
		{
			"name": "lid",
			"position": [0, 0.55, 0],
			"orientation": [0.7071067811865476, 0, 0.7071067811865476, 0],
			"halfExtent": [0.25, 0.05, 0.25],
			"color": "#8b4513cc"
		}
	]
}`

func TestDecode(t *testing.T) {
	tpl, err := Decode([]byte(crateJSON))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if tpl.Name() != "crate" {
		t.Errorf("Name = %q, want crate", tpl.Name())
	}

	root := tpl.Instantiate()
	kids := root.Children()
	if len(kids) != 2 {
		t.Fatalf("instance has %d children, want 2", len(kids))
	}

	body := kids[0]
	if body.Name() != "body" {
		t.Errorf("child 0 name = %q", body.Name())
	}
	if got := body.Pose().Position; got != arplace.V3(0, 0.25, 0) {
		t.Errorf("body position = %+v", got)
	}
	if body.HalfExtent != arplace.V3(0.25, 0.25, 0.25) {
		t.Errorf("body half extent = %+v", body.HalfExtent)
	}
	if body.Color != (color.RGBA{R: 0xB5, G: 0x65, B: 0x1D, A: 0xFF}) {
		t.Errorf("body color = %+v", body.Color)
	}

	lid := kids[1]
	if lid.Color.A != 0xCC {
		t.Errorf("lid alpha = %#x, want 0xcc", lid.Color.A)
	}
	if lid.Pose().Orientation.IsIdentity() {
		t.Error("lid orientation not applied")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"invalid json", `{`},
		{"missing name", `{"nodes":[{"name":"a"}]}`},
		{"no nodes", `{"name":"empty"}`},
		{"bad color", `{"name":"x","nodes":[{"name":"a","color":"red"}]}`},
		{"short color", `{"name":"x","nodes":[{"name":"a","color":"#fff"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.json)); err == nil {
				t.Error("Decode succeeded, want error")
			}
		})
	}
}

func TestDecodeDefaultColor(t *testing.T) {
	tpl, err := Decode([]byte(`{"name":"x","nodes":[{"name":"a"}]}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	got := tpl.Instantiate().Children()[0].Color
	if got != defaultColor {
		t.Errorf("color = %+v, want default", got)
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	tpl, err := Decode([]byte(crateJSON))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	a := tpl.Instantiate()
	b := tpl.Instantiate()
	if a == b || a.ID() == b.ID() {
		t.Fatal("instances share identity")
	}

	a.SetPose(arplace.PoseAt(arplace.V3(5, 0, 0)))
	if b.Pose().Position != (arplace.Vec3{}) {
		t.Error("moving one instance moved another")
	}

	// The template prototype is untouched by instance mutation.
	c := tpl.Instantiate()
	if c.Pose().Position != (arplace.Vec3{}) {
		t.Error("instance mutation leaked into template")
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crate.json")
	if err := os.WriteFile(path, []byte(crateJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	tpl, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if tpl.Name() != "crate" {
		t.Errorf("Name = %q", tpl.Name())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}

func TestPrefetchDeliversOnSuccess(t *testing.T) {
	want, err := Decode([]byte(crateJSON))
	if err != nil {
		t.Fatal(err)
	}
	ch := Prefetch(context.Background(), "mem://crate", func(context.Context, string) (*Template, error) {
		return want, nil
	})

	select {
	case got := <-ch:
		if got != want {
			t.Errorf("delivered %p, want %p", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Prefetch did not deliver")
	}
}

func TestPrefetchNeverDeliversOnFailure(t *testing.T) {
	ch := Prefetch(context.Background(), "mem://broken", func(context.Context, string) (*Template, error) {
		return nil, os.ErrNotExist
	})

	select {
	case tpl := <-ch:
		t.Fatalf("failure delivered %v", tpl)
	case <-time.After(50 * time.Millisecond):
		// Expected: the channel stays silent.
	}
}
