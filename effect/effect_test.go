package effect

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/aquatype/grid"
)

func sample() *grid.Grid {
	return grid.FromLines([]string{
		"ABCD",
		"EFGH",
		"IJKL",
		"MNOP",
	})
}

func TestNopCompletesImmediately(t *testing.T) {
	orig := sample()
	working := grid.New(4, 4)

	if st := New(None(), time.Second, 10).Update(working, orig); st != Completed {
		t.Errorf("Expected Completed, got %v", st)
	}
	if !working.Equal(orig) {
		t.Errorf("Expected original copy, got:\n%s", working)
	}
}

func TestFadeInDownReveal(t *testing.T) {
	orig := sample()
	working := grid.New(4, 4)
	eff := New(FadeIn(Down), time.Second, 4)

	// Frame k reveals floor(4*k/4) = k rows from the top
	for k := 0; k <= 4; k++ {
		st := eff.Update(working, orig)
		for y, line := range working.Lines() {
			want := "    "
			if y < k {
				want = orig.Lines()[y]
			}
			if line != want {
				t.Errorf("frame %d row %d: got %q want %q", k, y, line, want)
			}
		}
		if k < 4 && st != Running {
			t.Errorf("frame %d: expected Running, got %v", k, st)
		}
		if k == 4 && st != Completed {
			t.Errorf("frame %d: expected Completed, got %v", k, st)
		}
	}
}

func TestFadeOutDownHides(t *testing.T) {
	orig := sample()
	working := grid.New(4, 4)
	eff := New(FadeOut(Down), time.Second, 4)

	eff.Update(working, orig)
	if !working.Equal(orig) {
		t.Errorf("Expected full original on first frame, got:\n%s", working)
	}
	eff.Update(working, orig)
	if got := working.Lines(); got[0] != "    " || got[1] != "EFGH" {
		t.Errorf("Expected top row hidden, got:\n%s", working)
	}
}

func TestFadeDirections(t *testing.T) {
	cases := []struct {
		spec Spec
		want []string
	}{
		{FadeIn(Up), []string{"    ", "    ", "IJKL", "MNOP"}},
		{FadeIn(Left), []string{"AB  ", "EF  ", "IJ  ", "MN  "}},
		{FadeIn(Right), []string{"  CD", "  GH", "  KL", "  OP"}},
		{FadeOut(Up), []string{"ABCD", "EFGH", "    ", "    "}},
		{FadeOut(Left), []string{"  CD", "  GH", "  KL", "  OP"}},
		{FadeOut(Right), []string{"AB  ", "EF  ", "IJ  ", "MN  "}},
	}

	for _, tc := range cases {
		orig := sample()
		working := grid.New(4, 4)
		eff := New(tc.spec, time.Second, 4)
		// Third call runs at ratio 2/4
		for i := 0; i < 3; i++ {
			eff.Update(working, orig)
		}
		if got := strings.Join(working.Lines(), "|"); got != strings.Join(tc.want, "|") {
			t.Errorf("%+v: got %q want %q", tc.spec, got, strings.Join(tc.want, "|"))
		}
	}
}

func TestFadeStableAfterCompletion(t *testing.T) {
	orig := sample()
	working := grid.New(4, 4)
	eff := New(FadeOut(Right), time.Second, 2)

	var last string
	for i := 0; i < 3; i++ {
		eff.Update(working, orig)
		last = working.String()
	}
	for i := 0; i < 5; i++ {
		if st := eff.Update(working, orig); st != Completed {
			t.Fatalf("Expected Completed after end, got %v", st)
		}
		if working.String() != last {
			t.Errorf("Expected final frame to stay stable, got:\n%s", working)
		}
	}
}

func TestZeroDurationFade(t *testing.T) {
	orig := sample()
	working := grid.New(4, 4)

	if st := New(FadeIn(Down), 0, 10).Update(working, orig); st != Completed {
		t.Errorf("Expected Completed, got %v", st)
	}
	if !working.Equal(orig) {
		t.Errorf("Expected full original for zero-length fade-in, got:\n%s", working)
	}
}

func TestTotalFrames(t *testing.T) {
	if got := TotalFrames(time.Second, 10); got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
	if got := TotalFrames(500*time.Millisecond, 10); got != 5 {
		t.Errorf("Expected 5, got %d", got)
	}
	if got := TotalFrames(time.Second, 0); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

func TestRandomFadeIsFade(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		s, ok := RandomFadeIn(rng).(FadeSpec)
		if !ok || !s.In {
			t.Fatalf("Expected fade-in spec, got %#v", s)
		}
		o, ok := RandomFadeOut(rng).(FadeSpec)
		if !ok || o.In {
			t.Fatalf("Expected fade-out spec, got %#v", o)
		}
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("left")
	if err != nil || d != Left {
		t.Errorf("Expected Left, got %v (%v)", d, err)
	}
	if _, err := ParseDirection("diagonal"); err == nil {
		t.Error("Expected error for unknown direction")
	}
}
