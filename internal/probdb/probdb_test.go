package probdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/msheby/rogour/internal/rules"
)

func TestNewEmptyAllUnknown(t *testing.T) {
	db := NewEmpty(4)
	for _, idx := range []int64{0, 1, 1000, 137913935} {
		if _, ok := db.Get(idx); ok {
			t.Fatalf("Get(%d) on a fresh database reported a known value", idx)
		}
	}
}

func TestSetGetRoundTrip4Byte(t *testing.T) {
	db := NewEmpty(4)
	cases := []float64{0, 0.5, 0.999999, 0.0001}
	for i, p := range cases {
		db.Set(int64(i), p)
		got, ok := db.Get(int64(i))
		if !ok {
			t.Fatalf("Get(%d) reported unknown after Set(%v)", i, p)
		}
		if diff := got - p; diff > 1e-8 || diff < -1e-8 {
			t.Fatalf("Get(%d) = %v, want %v", i, got, p)
		}
	}
}

func TestSetGetRoundTripOneAtWsize4(t *testing.T) {
	db := NewEmpty(4)
	db.Set(0, 1.0)
	got, ok := db.Get(0)
	if !ok {
		t.Fatal("Get(0) reported unknown after Set(1.0)")
	}
	if diff := got - 1.0; diff > 1e-8 || diff < -1e-8 {
		t.Fatalf("Get(0) = %v, want ~1.0 (a Green-won terminal must not read back as -1.0)", got)
	}
}

func TestSetGetRoundTrip2Byte(t *testing.T) {
	db := NewEmpty(2)
	p := 0.37
	db.Set(5, p)
	got, ok := db.Get(5)
	if !ok {
		t.Fatal("Get(5) reported unknown after Set")
	}
	const tol = 1.0 / ((1 << 16) - 1)
	if diff := got - p; diff > tol || diff < -tol {
		t.Fatalf("Get(5) = %v, want within %v of %v", got, tol, p)
	}
}

func TestAGetASetRoundTrip(t *testing.T) {
	db := NewEmpty(4)
	b := rules.StartPosition()
	if err := db.ASet(b, 0.73); err != nil {
		t.Fatalf("ASet: %v", err)
	}
	got, ok, err := db.AGet(b)
	if err != nil {
		t.Fatalf("AGet: %v", err)
	}
	if !ok {
		t.Fatal("AGet reported unknown after ASet")
	}
	if diff := got - 0.73; diff > 1e-8 || diff < -1e-8 {
		t.Fatalf("AGet = %v, want 0.73", got)
	}
}

func TestSaveLoadRoundTrip4Byte(t *testing.T) {
	db := NewEmpty(4)
	db.Set(0, 0.25)
	db.Set(42, 0.75)

	path := filepath.Join(t.TempDir(), "probs.bin")
	if err := db.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Wsize() != 4 {
		t.Fatalf("Wsize() = %d, want 4", loaded.Wsize())
	}
	for _, idx := range []int64{0, 42} {
		got, ok := loaded.Get(idx)
		if !ok {
			t.Fatalf("loaded Get(%d) reported unknown", idx)
		}
		want, _ := db.Get(idx)
		if got != want {
			t.Fatalf("loaded Get(%d) = %v, want %v", idx, got, want)
		}
	}
}

func TestLoadRejectsCorruptSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected Load to reject a file whose size matches no wsize")
	}
}

func TestSaveWithHeaderLoadAutoRoundTrip(t *testing.T) {
	db := NewEmpty(2)
	db.Set(7, 0.9)

	path := filepath.Join(t.TempDir(), "probs.rogourdb")
	if err := db.SaveWithHeader(path); err != nil {
		t.Fatalf("SaveWithHeader: %v", err)
	}
	loaded, err := LoadAuto(path)
	if err != nil {
		t.Fatalf("LoadAuto: %v", err)
	}
	if loaded.Wsize() != 2 {
		t.Fatalf("Wsize() = %d, want 2", loaded.Wsize())
	}
	got, ok := loaded.Get(7)
	if !ok {
		t.Fatal("loaded Get(7) reported unknown")
	}
	if diff := got - 0.9; diff > 1e-3 || diff < -1e-3 {
		t.Fatalf("loaded Get(7) = %v, want ~0.9", got)
	}
}

func TestLoadAutoFallsBackToHeaderless(t *testing.T) {
	db := NewEmpty(4)
	db.Set(0, 1.0)
	path := filepath.Join(t.TempDir(), "legacy.bin")
	if err := db.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadAuto(path)
	if err != nil {
		t.Fatalf("LoadAuto on a legacy headerless file: %v", err)
	}
	if loaded.Wsize() != 4 {
		t.Fatalf("Wsize() = %d, want 4", loaded.Wsize())
	}
}
