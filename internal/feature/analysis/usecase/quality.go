package usecase

import (
	"regexp"
	"strings"
	"unicode"
)

// 本ファイルはWebコンテキスト由来の自由テキスト候補が、そのまま最終説明文と
// して使えるかを判定する品質フィルタを実装します。誤って良い候補を棄却する
// ことは許容されます（棄却された候補はルールベースのシーン記述にフォール
// スルーするだけで失われない）。誤って不良候補を受理することは許容されません。

const (
	// minDescriptionLength は候補テキストの最低文字数です。
	minDescriptionLength = 10
	// maxNonASCIIRatio は許容される非ASCII文字の割合です。
	// 完全な言語判定器ではなく、非英語コンテンツの保守的な近似です。
	maxNonASCIIRatio = 0.3
)

// simpleTerms は説明文として汎用的すぎる日常名詞・色名・車両クラスです。
var simpleTerms = []string{
	"pickup", "truck", "car", "vehicle", "person", "man", "woman", "child",
	"building", "house", "tree", "road", "street", "water", "sky", "land",
	"food", "plate", "table", "chair", "door", "window", "light", "dark",
	"red", "blue", "green", "black", "white", "yellow", "orange", "purple",
	"pickup truck", "sports car", "sedan", "suv", "motorcycle", "bicycle",
}

// genericTerms はストックフォト・企業クレジット系の汎用語です。
// "photo of "/"photo showing " で始まる明示的な記述フレーズは除外対象外です。
var genericTerms = []string{
	"image", "picture", "photograph", "stock photo", "download",
	"free", "background", "wallpaper", "texture", "pattern", "abstract",
	"productions", "production", "company", "corporation", "ltd", "llc", "inc",
	"photography", "studio", "films", "entertainment", "media",
}

// imperativeVerbs は命令形らしさを示す動詞です（3語以下の候補で棄却）。
var imperativeVerbs = []string{"shoot", "fire", "run", "jump", "stop", "go", "do", "make"}

// commonNouns は「rifle gun」のような名詞連結を検出するための一般名詞集合です。
var commonNouns = []string{"rifle", "gun", "tie", "suit", "coat", "hat", "shoe", "car", "truck", "ship", "plane"}

// NonASCIIRatio はテキスト中の非ASCII文字の割合を返します。
// 非英語コンテンツ検出の粗いヒューリスティックとして意図的に保持されます。
func NonASCIIRatio(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	count := 0
	for _, r := range s {
		if r > unicode.MaxASCII {
			count++
		}
	}
	return float64(count) / float64(len([]rune(s)))
}

// IsGoodDescription は候補テキストがそのまま説明文として使えるかを判定します。
// 棄却ルールは順に適用され、いずれかに一致した時点で棄却されます。
func IsGoodDescription(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minDescriptionLength {
		return false
	}

	lower := strings.ToLower(trimmed)
	words := strings.Fields(lower)

	// 汎用的すぎる1語候補
	if len(words) == 1 {
		for _, term := range simpleTerms {
			if !strings.Contains(term, " ") && words[0] == term {
				return false
			}
		}
	}

	// 汎用的すぎる2語の組み合わせ
	if len(words) == 2 {
		joined := strings.Join(words, " ")
		for _, term := range simpleTerms {
			if joined == term {
				return false
			}
		}
	}

	// 3語以下かつ全語が汎用語
	if len(words) <= 3 && allIn(words, simpleTerms) {
		return false
	}

	// 非英語コンテンツ（非ASCII比率 > 30%）
	if NonASCIIRatio(trimmed) > maxNonASCIIRatio {
		return false
	}

	// 全大文字の長い文字列
	if trimmed == strings.ToUpper(trimmed) && trimmed != strings.ToLower(trimmed) && len(trimmed) > 5 {
		return false
	}

	// ストックフォト・企業系の汎用語（"photo of" 構文は許可）
	if !strings.HasPrefix(lower, "photo of ") && !strings.HasPrefix(lower, "photo showing ") {
		if containsAny(lower, genericTerms) {
			return false
		}
	}

	// 命令形らしい短いフレーズ（"Shoot rifle." など）
	if len(words) <= 3 {
		for _, verb := range imperativeVerbs {
			if containsAny(lower, []string{verb}) {
				return false
			}
		}
	}

	// 冠詞を含まない名詞+名詞の連結（"rifle gun" など）
	if len(words) == 2 && words[0] != "the" && words[0] != "a" && words[0] != "an" &&
		words[1] != "the" && words[1] != "a" && words[1] != "an" {
		if allIn(words, commonNouns) {
			return false
		}
	}

	// 大文字小文字の混在が連結を示唆する2語の長い文字列（"RussianNavy" 系）
	origWords := strings.Fields(trimmed)
	if len(origWords) == 2 && len(trimmed) > 15 && strings.Count(trimmed, " ") == 1 {
		w1, w2 := origWords[0], origWords[1]
		if (isUpperStart(w1) && isLowerStart(w2)) || (isLowerStart(w1) && isUpperStart(w2)) {
			return false
		}
	}

	// 短い語3つの連結ノイズ（"russian navy ireland" 系）
	if len(origWords) == 3 {
		allShort := true
		anyCapitalized := false
		for _, w := range origWords {
			if len(w) > 7 {
				allShort = false
			}
			if isUpperStart(w) {
				anyCapitalized = true
			}
		}
		if allShort && anyCapitalized && !strings.ContainsAny(trimmed, ".,-()") {
			return false
		}
	}

	return len(trimmed) >= minDescriptionLength && len(words) >= 2
}

// siteNameSuffix は " - Site Name" / " | Site Name" 形式の末尾を検出します。
var siteNameSuffix = regexp.MustCompile(`\s*[|\-]\s*[^|\-]+$`)

// parenSuffix は末尾の "(Site Name)" を検出します。
var parenSuffix = regexp.MustCompile(`\s*\([^)]+\)$`)

// CleanWebTitle はWebページタイトルを説明文形式に整形します。
// サイト名サフィックスを除去し、必要なら先頭を大文字化し、終端ピリオドを付与します。
// 整形後に空になった場合は空文字列を返します。
func CleanWebTitle(title string) string {
	t := strings.TrimSpace(title)
	if t == "" {
		return ""
	}

	t = siteNameSuffix.ReplaceAllString(t, "")
	t = parenSuffix.ReplaceAllString(t, "")
	t = strings.TrimSpace(t)
	if t == "" {
		return ""
	}

	if t == strings.ToUpper(t) || t == strings.ToLower(t) {
		t = strings.ToUpper(t[:1]) + strings.ToLower(t[1:])
	}

	if !strings.HasSuffix(t, ".") {
		t += "."
	}
	return t
}

func allIn(words, set []string) bool {
	for _, w := range words {
		found := false
		for _, s := range set {
			if w == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func isUpperStart(w string) bool {
	if w == "" {
		return false
	}
	return unicode.IsUpper([]rune(w)[0])
}

func isLowerStart(w string) bool {
	if w == "" {
		return false
	}
	return unicode.IsLower([]rune(w)[0])
}
