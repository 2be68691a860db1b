package usecase

import (
	"testing"

	"imageclass_backend/internal/feature/analysis/domain/entity"
)

// TestChooseMainSubject はオブジェクト優先・ラベルフォールバックの被写体選択を検証します。
func TestChooseMainSubject(t *testing.T) {
	t.Parallel()

	t.Run("highest confidence non-generic object wins", func(t *testing.T) {
		t.Parallel()

		objects := []entity.ScoredObject{
			{Name: "Monument", Confidence: 0.7},
			{Name: "Statue", Confidence: 0.9},
			{Name: "Glasses", Confidence: 0.95}, // 汎用オブジェクトは除外
		}

		if got := chooseMainSubject(objects, nil); got != "Statue" {
			t.Errorf("chooseMainSubject = %q, want Statue", got)
		}
	})

	t.Run("falls back to labels when no objects", func(t *testing.T) {
		t.Parallel()

		labels := []entity.ScoredLabel{
			{Text: "Sky", Confidence: 0.99}, // 無意味語は除外
			{Text: "Monument", Confidence: 0.9},
		}

		if got := chooseMainSubject(nil, labels); got != "Monument" {
			t.Errorf("chooseMainSubject = %q, want Monument", got)
		}
	})

	t.Run("priority term beats higher confidence plain label", func(t *testing.T) {
		t.Parallel()

		labels := []entity.ScoredLabel{
			{Text: "Monument", Confidence: 0.95},
			{Text: "Submarine", Confidence: 0.9},
		}

		// 信頼度順に走査されるが、どちらも採用条件を満たすため先に並ぶ
		// Monumentが選ばれる（優先語は同一ラベル内の判定であり順位の入替はない）
		if got := selectBestSubjectLabel(labels); got != "Monument" {
			t.Errorf("selectBestSubjectLabel = %q, want Monument", got)
		}
	})

	t.Run("empty input yields no subject", func(t *testing.T) {
		t.Parallel()

		if got := chooseMainSubject(nil, nil); got != "" {
			t.Errorf("chooseMainSubject = %q, want empty", got)
		}
	})
}

// TestDescribeMainSubject は被写体カテゴリ別の記述合成を検証します。
func TestDescribeMainSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		objects []entity.ScoredObject
		labels  []entity.ScoredLabel
		text    string
		want    string
		wantOK  bool
	}{
		{
			name:    "plain subject without context",
			objects: []entity.ScoredObject{{Name: "Statue", Confidence: 0.9}},
			want:    "Photo of statue.",
			wantOK:  true,
		},
		{
			name:    "subject with context elements",
			objects: []entity.ScoredObject{{Name: "Statue", Confidence: 0.9}},
			labels:  []entity.ScoredLabel{{Text: "Street", Confidence: 0.9}, {Text: "Standing", Confidence: 0.8}},
			want:    "Photo of statue outdoors, standing.",
			wantOK:  true,
		},
		{
			name:    "submarine subject",
			objects: []entity.ScoredObject{{Name: "Submarine", Confidence: 0.9}},
			labels:  []entity.ScoredLabel{{Text: "Sea", Confidence: 0.9}},
			want:    "Military submarine at sea.",
			wantOK:  true,
		},
		{
			name:   "no subject available",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := describeMainSubject(tt.objects, tt.labels, tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (description %q)", ok, tt.wantOK, got)
			}
			if ok && got != tt.want {
				t.Errorf("describeMainSubject = %q, want %q", got, tt.want)
			}
		})
	}
}
