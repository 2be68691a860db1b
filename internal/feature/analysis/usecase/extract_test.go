package usecase

import (
	"testing"

	"imageclass_backend/internal/feature/analysis/domain/entity"
)

// TestExtractPeople は人物抽出の各ソース（役職ラベル・顔・ページタイトル）を検証します。
func TestExtractPeople(t *testing.T) {
	t.Parallel()

	t.Run("political title labels above threshold", func(t *testing.T) {
		t.Parallel()

		ann := &entity.Annotations{
			Labels: []entity.ScoredLabel{
				{Text: "President", Confidence: 0.9},
				{Text: "Minister", Confidence: 0.5}, // 閾値未満
			},
		}

		got := extractPeople(ann)
		if len(got) != 1 || got[0] != "President" {
			t.Errorf("extractPeople = %v, want [President]", got)
		}
	})

	t.Run("formal setting implies political figure", func(t *testing.T) {
		t.Parallel()

		ann := &entity.Annotations{
			Labels: []entity.ScoredLabel{{Text: "Podium", Confidence: 0.8}},
		}

		got := extractPeople(ann)
		if len(got) != 1 || got[0] != "Political figure" {
			t.Errorf("extractPeople = %v, want [Political figure]", got)
		}
	})

	t.Run("face names without threshold", func(t *testing.T) {
		t.Parallel()

		ann := &entity.Annotations{
			Faces: []entity.Face{{CelebrityName: "Vladimir Putin"}},
		}

		got := extractPeople(ann)
		if len(got) != 1 || got[0] != "Vladimir Putin" {
			t.Errorf("extractPeople = %v, want [Vladimir Putin]", got)
		}
	})

	t.Run("page title name pattern", func(t *testing.T) {
		t.Parallel()

		ann := &entity.Annotations{
			Web: entity.WebContext{
				MatchingPages: []entity.MatchingPage{
					{Title: "Putin meets officials"},
					{Title: "The summit continues"}, // 冠詞で始まるタイトルは除外
				},
			},
		}

		got := extractPeople(ann)
		if len(got) != 1 || got[0] != "Putin" {
			t.Errorf("extractPeople = %v, want [Putin]", got)
		}
	})

	t.Run("case-insensitive dedup keeps first", func(t *testing.T) {
		t.Parallel()

		ann := &entity.Annotations{
			Faces: []entity.Face{
				{CelebrityName: "Vladimir Putin"},
				{CelebrityName: "VLADIMIR PUTIN"},
			},
		}

		got := extractPeople(ann)
		if len(got) != 1 || got[0] != "Vladimir Putin" {
			t.Errorf("extractPeople = %v, want [Vladimir Putin]", got)
		}
	})
}

// TestExtractLocations は場所抽出（ラベル・ランドマーク・ページタイトル）を検証します。
func TestExtractLocations(t *testing.T) {
	t.Parallel()

	ann := &entity.Annotations{
		Labels: []entity.ScoredLabel{
			{Text: "Embassy", Confidence: 0.8},
			{Text: "Building", Confidence: 0.6}, // 閾値未満
		},
		Landmarks: []entity.ScoredLabel{{Text: "Hagia Sophia", Confidence: 0.4}},
	}

	got := extractLocations(ann)
	want := []string{"Embassy", "Hagia Sophia"}
	if len(got) != len(want) {
		t.Fatalf("extractLocations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("extractLocations[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestExtractOrganizations は組織抽出（ラベル・ロゴ）を検証します。
func TestExtractOrganizations(t *testing.T) {
	t.Parallel()

	ann := &entity.Annotations{
		Labels: []entity.ScoredLabel{
			{Text: "Government agency", Confidence: 0.8},
			{Text: "Military organization", Confidence: 0.9}, // 装備系の除外語を含む
		},
		Logos: []entity.ScoredLabel{{Text: "Roscosmos", Confidence: 0.5}},
	}

	got := extractOrganizations(ann)
	want := []string{"Government agency", "Roscosmos"}
	if len(got) != len(want) {
		t.Fatalf("extractOrganizations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("extractOrganizations[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestExtractObjects はオブジェクト抽出と人物オブジェクトの除外を検証します。
func TestExtractObjects(t *testing.T) {
	t.Parallel()

	ann := &entity.Annotations{
		Labels: []entity.ScoredLabel{
			{Text: "Military vehicle", Confidence: 0.9},
			{Text: "Weapon", Confidence: 0.7}, // 閾値未満
		},
		Objects: []entity.ScoredObject{
			{Name: "Tank", Confidence: 0.8},
			{Name: "Person", Confidence: 0.9}, // 人物は除外
			{Name: "Rifle", Confidence: 0.5},  // 閾値未満
		},
	}

	got := extractObjects(ann)
	want := []string{"Military vehicle", "Tank"}
	if len(got) != len(want) {
		t.Fatalf("extractObjects = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("extractObjects[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestExtractCountries は国旗ラベルからの国検出と検出順の保持を検証します。
func TestExtractCountries(t *testing.T) {
	t.Parallel()

	t.Run("detection order follows label order", func(t *testing.T) {
		t.Parallel()

		ann := &entity.Annotations{
			Labels: []entity.ScoredLabel{
				{Text: "Russian flag", Confidence: 0.9},
				{Text: "Iranian flag", Confidence: 0.8},
			},
		}

		got := extractCountries(ann)
		want := []string{"Russia", "Iran"}
		if len(got) != len(want) {
			t.Fatalf("extractCountries = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("extractCountries[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("below threshold ignored", func(t *testing.T) {
		t.Parallel()

		ann := &entity.Annotations{
			Labels: []entity.ScoredLabel{{Text: "Russian flag", Confidence: 0.6}},
		}

		if got := extractCountries(ann); len(got) != 0 {
			t.Errorf("extractCountries = %v, want empty", got)
		}
	})

	t.Run("duplicate country counted once", func(t *testing.T) {
		t.Parallel()

		ann := &entity.Annotations{
			Labels: []entity.ScoredLabel{
				{Text: "Chinese flag", Confidence: 0.9},
				{Text: "Flag of China", Confidence: 0.8},
			},
		}

		got := extractCountries(ann)
		if len(got) != 1 || got[0] != "China" {
			t.Errorf("extractCountries = %v, want [China]", got)
		}
	})
}

// TestFilterExtractedText は軍事識別子を含むテキストのみ保持されることを検証します。
func TestFilterExtractedText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"military indicator kept", "Iranian Army parade", "Iranian Army parade"},
		{"ocr noise dropped", "Grand opening today", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ann := &entity.Annotations{}
			if tt.text != "" {
				ann.Texts = []string{tt.text}
			}
			if got := FilterExtractedText(ann); got != tt.want {
				t.Errorf("FilterExtractedText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// TestDetectEquipment は装備検出の閾値と除外語を検証します。
func TestDetectEquipment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ann  *entity.Annotations
		want bool
	}{
		{
			"high confidence equipment label",
			&entity.Annotations{Labels: []entity.ScoredLabel{{Text: "Tank", Confidence: 0.96}}},
			true,
		},
		{
			"label below threshold",
			&entity.Annotations{Labels: []entity.ScoredLabel{{Text: "Tank", Confidence: 0.9}}},
			false,
		},
		{
			"localized object at lower threshold",
			&entity.Annotations{Objects: []entity.ScoredObject{{Name: "Missile", Confidence: 0.9}}},
			true,
		},
		{
			"excluded term not equipment",
			&entity.Annotations{Labels: []entity.ScoredLabel{{Text: "Flag", Confidence: 0.99}}},
			false,
		},
		{
			"empty annotations",
			&entity.Annotations{},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DetectEquipment(tt.ann); got != tt.want {
				t.Errorf("DetectEquipment = %v, want %v", got, tt.want)
			}
		})
	}
}
