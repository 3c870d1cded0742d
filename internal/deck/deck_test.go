package deck

import (
	"bytes"
	"reflect"
	"testing"
)

func testContent() Content {
	return Content{
		Question: "What drives sales?",
		Insights: "- **North region** leads revenue\n* Growth is concentrated in Q3\n\n• Margins are stable",
		Outline:  ParseOutline(validOutlineJSON, "What drives sales?"),
		Charts:   nil,
	}
}

func TestCompose_FixedStageOrder(t *testing.T) {
	b := mustBuilder(t, "default")
	specs := b.Compose(testContent())

	if len(specs) != 5 {
		t.Fatalf("slides = %d, want 5", len(specs))
	}
	wantStages := []Stage{StageTitle, StageOverview, StageInsights, StageChart, StageRecommendations}
	for i, want := range wantStages {
		if specs[i].Stage != want {
			t.Errorf("slide %d stage = %v, want %v", i, specs[i].Stage, want)
		}
	}
}

func TestCompose_Deterministic(t *testing.T) {
	b := mustBuilder(t, "corporate_green")
	a := b.Compose(testContent())
	c := b.Compose(testContent())
	if !reflect.DeepEqual(a, c) {
		t.Error("same inputs produced different slide specs")
	}
}

func TestCompose_InsightLinesCleaned(t *testing.T) {
	b := mustBuilder(t, "default")
	specs := b.Compose(testContent())

	got := specs[2].Bullets
	want := []string{
		"North region leads revenue",
		"Growth is concentrated in Q3",
		"Margins are stable",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("insight bullets = %q, want %q", got, want)
	}
}

func TestCompose_BadOutlineUsesFallback(t *testing.T) {
	b := mustBuilder(t, "default")
	c := testContent()
	c.Outline = Outline{} // deck order is fixed even when the model gave nothing
	specs := b.Compose(c)
	if len(specs) != 5 {
		t.Fatalf("slides = %d, want 5", len(specs))
	}
	if specs[4].Title != "Strategic Recommendations" {
		t.Errorf("fallback recommendations title = %q", specs[4].Title)
	}
}

func TestWrite_ProducesPPTX(t *testing.T) {
	b := mustBuilder(t, "default")
	specs := b.Compose(testContent())

	var buf bytes.Buffer
	if err := b.Write(specs, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty deck output")
	}
	// pptx files are zip archives
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Errorf("output does not look like a zip archive: % x", buf.Bytes()[:4])
	}
}

func TestStripBold(t *testing.T) {
	cases := map[string]string{
		"**bold** text":      "bold text",
		"__under__ score":    "under score",
		"no markers":         "no markers",
		"dangling ** marker": "dangling ** marker",
	}
	for in, want := range cases {
		if got := stripBold(in); got != want {
			t.Errorf("stripBold(%q) = %q, want %q", in, got, want)
		}
	}
}

func mustBuilder(t *testing.T, name string) *Builder {
	t.Helper()
	tpl, err := Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	return NewBuilder(tpl)
}
