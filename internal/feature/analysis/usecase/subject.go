package usecase

import (
	"fmt"
	"sort"
	"strings"

	"imageclass_backend/internal/feature/analysis/domain/entity"
)

// 本ファイルはシーンカスケードのどの分岐も発火しなかった場合の
// 主要被写体フォールバックを実装します。位置特定オブジェクトを優先し、
// 次にラベルの3段階優先度選択へフォールバックします。

// genericObjectTerms は主要被写体として意味を持たない汎用オブジェクト名です。
var genericObjectTerms = map[string]bool{
	"glasses": true, "sunglasses": true, "goggles": true, "clothing": true,
	"person": true, "man": true, "woman": true, "hat": true,
	"outerwear": true, "glove": true,
}

// meaninglessSubjectTerms は被写体ラベルとして除外する語の包括的リストです
// （環境・照明、汎用衣類、身体部位、汎用人物語、抽象語、品質記述子）。
var meaninglessSubjectTerms = []string{
	// 環境・照明
	"sky", "water", "ocean", "sea", "land", "ground", "building", "structure",
	"light", "dark", "color", "background", "foreground", "texture", "glasses",
	"daylighting", "daylight", "lighting", "shade", "shadow", "reflection",
	// 汎用オブジェクト・衣類
	"tie", "jacket", "shirt", "pants", "coat", "clothing", "apparel", "fashion",
	"suit", "dress", "hat", "shoe", "sock", "belt", "button", "zipper",
	"fabric", "material", "textile", "leather", "wood", "metal", "plastic",
	// 身体部位
	"hand", "arm", "leg", "foot", "head", "face", "eye", "nose", "mouth", "ear",
	"hair", "skin", "finger", "thumb", "toe", "neck", "shoulder", "knee",
	// 汎用人物語
	"people", "group", "crowd", "individual", "adult", "child", "man", "woman",
	"human", "person", "male", "female", "boy", "girl", "baby", "elderly",
	// 抽象語
	"communication", "conversation", "discussion", "meeting", "gathering",
	"event", "occasion", "celebration", "ceremony", "party", "conference",
	// 品質記述子
	"quality", "style", "design", "pattern", "shape", "size", "large", "small",
	"big", "little", "tall", "short", "wide", "narrow", "thick", "thin",
}

// prioritySubjectTerms は最優先の被写体語です（軍事・船舶・航空など）。
var prioritySubjectTerms = []string{
	"ship", "boat", "vessel", "aircraft", "satellite", "military", "uniform",
	"soldier", "army", "navy", "air force", "politician", "president", "minister",
	"official", "government", "equipment", "vehicle", "weapon", "tank",
	"helicopter", "plane", "jet", "rocket", "missile", "submarine",
	"flag", "embassy", "building", "office", "headquarters",
}

// mediumSubjectTerms は中優先の具体的オブジェクト語です（信頼度0.7超で採用）。
var mediumSubjectTerms = []string{
	"car", "truck", "bus", "train", "motorcycle", "bicycle",
	"computer", "phone", "camera", "microphone", "television",
	"book", "paper", "document", "sign", "logo", "brand",
}

// describeMainSubject は主要被写体を選択し、被写体別の記述を合成します。
// 被写体が選択できなかった場合はfalseを返します。
func describeMainSubject(objects []entity.ScoredObject, labels []entity.ScoredLabel, text string) (string, bool) {
	subject := chooseMainSubject(objects, labels)
	if subject == "" {
		return "", false
	}

	lower := strings.ToLower(subject)
	ls := labelString(labels)

	if lower == "person" || lower == "man" || lower == "woman" {
		if ctx := personContext(labels); ctx != "" {
			return ctx, true
		}
		return "Person in scene.", true
	}

	return enhanceSubjectDescription(subject, ls, text), true
}

// chooseMainSubject は汎用でない最高信頼度のオブジェクト、なければ
// 優先度ベースのラベル選択で主要被写体を返します。
func chooseMainSubject(objects []entity.ScoredObject, labels []entity.ScoredLabel) string {
	good := make([]entity.ScoredObject, 0, len(objects))
	for _, o := range objects {
		if !genericObjectTerms[strings.ToLower(o.Name)] {
			good = append(good, o)
		}
	}
	if len(good) > 0 {
		sort.SliceStable(good, func(i, j int) bool { return good[i].Confidence > good[j].Confidence })
		return good[0].Name
	}
	return selectBestSubjectLabel(labels)
}

// selectBestSubjectLabel は3段階の優先度でラベルから被写体を選択します。
// 最優先語 > 中優先語（信頼度0.7超） > 任意のラベル（信頼度0.85超）。
func selectBestSubjectLabel(labels []entity.ScoredLabel) string {
	sorted := make([]entity.ScoredLabel, len(labels))
	copy(sorted, labels)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Confidence > sorted[j].Confidence })

	for _, l := range sorted {
		lower := strings.ToLower(l.Text)
		if containsAny(lower, meaninglessSubjectTerms) {
			continue
		}
		if containsAny(lower, prioritySubjectTerms) {
			return l.Text
		}
		if containsAny(lower, mediumSubjectTerms) && l.Confidence > 0.7 {
			return l.Text
		}
		if l.Confidence > 0.85 {
			return l.Text
		}
	}
	return ""
}

// personContext は人物被写体のコンテキストをラベルから判定します。
func personContext(labels []entity.ScoredLabel) string {
	for _, l := range labels {
		lower := strings.ToLower(l.Text)
		switch {
		case containsAny(lower, []string{"military uniform", "soldier", "army", "military person"}):
			return "Military personnel."
		case containsAny(lower, []string{"chemical protection", "personal protective equipment", "gas mask", "protective suit"}):
			return "Personnel in protective gear."
		case containsAny(lower, []string{"politician", "president", "minister", "government official"}):
			return "Government official."
		}
	}
	return ""
}

// enhanceSubjectDescription は被写体カテゴリ別の記述へディスパッチします。
// どのカテゴリにも該当しない被写体は "Photo of <subject> <context>." 形式になります。
func enhanceSubjectDescription(subject, ls, text string) string {
	lower := strings.ToLower(subject)

	switch {
	case containsAny(lower, []string{"ship", "boat", "vessel", "submarine"}):
		return describeVesselSubject(subject, ls, text)
	case containsAny(lower, []string{"military", "soldier", "uniform", "equipment", "weapon"}):
		return describeMilitarySubject(subject, ls)
	case containsAny(lower, []string{"aircraft", "plane", "helicopter", "jet"}):
		return describeAviationSubject(subject, ls)
	case containsAny(lower, []string{"politician", "president", "minister", "official", "government"}):
		return describePoliticalSubject(subject, ls)
	case containsAny(lower, []string{"computer", "phone", "camera", "device", "equipment"}):
		return describeTechnologySubject(subject, ls)
	}

	context := subjectContextElements(ls)
	if len(context) > 2 {
		context = context[:2]
	}
	if len(context) > 0 {
		return fmt.Sprintf("Photo of %s %s.", lower, strings.Join(context, ", "))
	}
	return fmt.Sprintf("Photo of %s.", lower)
}

// subjectContextElements はラベルから場所・時間・動作・装いのコンテキスト句を集めます。
func subjectContextElements(ls string) []string {
	var elements []string

	if containsAny(ls, []string{"indoor", "building", "office", "room"}) {
		elements = append(elements, "indoors")
	} else if containsAny(ls, []string{"outdoor", "street", "urban", "city"}) {
		elements = append(elements, "outdoors")
	}

	if strings.Contains(ls, "day") && strings.Contains(ls, "sun") {
		elements = append(elements, "in daylight")
	} else if strings.Contains(ls, "night") || strings.Contains(ls, "dark") {
		elements = append(elements, "at night")
	}

	if strings.Contains(ls, "standing") {
		elements = append(elements, "standing")
	} else if strings.Contains(ls, "sitting") {
		elements = append(elements, "seated")
	} else if strings.Contains(ls, "walking") || strings.Contains(ls, "moving") {
		elements = append(elements, "in motion")
	}

	if strings.Contains(ls, "uniform") || strings.Contains(ls, "military") {
		elements = append(elements, "in uniform")
	} else if strings.Contains(ls, "suit") || strings.Contains(ls, "tie") {
		elements = append(elements, "in formal attire")
	}

	return elements
}

func describeVesselSubject(subject, ls, text string) string {
	textLower := strings.ToLower(text)

	if strings.Contains(strings.ToLower(subject), "submarine") {
		desc := "Military submarine"
		if strings.Contains(ls, "surface") {
			desc = "Military submarine traveling on the surface"
		}
		if strings.Contains(ls, "person") || strings.Contains(ls, "crew") {
			desc += " with crew members visible"
		}
		if containsAny(ls, []string{"waterway", "strait", "canal"}) {
			desc += " navigating through a waterway"
		} else if strings.Contains(ls, "sea") || strings.Contains(ls, "ocean") {
			desc += " at sea"
		}
		return desc + "."
	}

	if strings.Contains(ls, "lng") || strings.Contains(ls, "carrier") {
		return "LNG carrier vessel transporting liquefied natural gas."
	}
	if strings.Contains(textLower, "maersk") {
		return "Maersk shipping vessel at sea."
	}
	if strings.Contains(textLower, "garmin") {
		return fmt.Sprintf("%s equipped with Garmin navigation.", subject)
	}
	if strings.Contains(ls, "rigid") && strings.Contains(ls, "inflatable") {
		return "Rigid inflatable boat in maritime operation."
	}
	if strings.Contains(ls, "military") || strings.Contains(ls, "navy") {
		return "Military naval vessel at sea."
	}

	if containsAny(ls, []string{"waterway", "strait", "canal"}) {
		return fmt.Sprintf("%s navigating through a waterway.", subject)
	}
	if strings.Contains(ls, "sea") || strings.Contains(ls, "ocean") {
		return fmt.Sprintf("%s at sea.", subject)
	}
	return fmt.Sprintf("%s on the water.", subject)
}

func describeMilitarySubject(subject, ls string) string {
	if containsAny(ls, []string{"gas mask", "protective", "chemical", "hazmat", "mask"}) {
		var gear []string
		if strings.Contains(ls, "gas mask") {
			gear = append(gear, "gas masks")
		}
		if strings.Contains(ls, "helmet") {
			gear = append(gear, "helmets")
		}
		if strings.Contains(ls, "glove") {
			gear = append(gear, "gloves")
		}
		if len(gear) > 0 {
			return fmt.Sprintf("Military personnel wearing chemical protection gear including %s.", strings.Join(gear, ", "))
		}
		return "Military personnel in chemical protection gear."
	}

	if strings.Contains(ls, "uniform") || strings.Contains(ls, "military") {
		if strings.Contains(ls, "standing") {
			return "Military personnel standing in uniform."
		}
		if strings.Contains(ls, "walking") {
			return "Military personnel walking in uniform."
		}
		return "Military personnel in uniform."
	}

	if containsAny(ls, []string{"weapon", "rifle", "gun", "tank", "equipment"}) {
		return fmt.Sprintf("Military %s with equipment visible.", strings.ToLower(subject))
	}
	return fmt.Sprintf("Military %s in service.", strings.ToLower(subject))
}

func describeAviationSubject(subject, ls string) string {
	lower := strings.ToLower(subject)
	inFlight := strings.Contains(ls, "flying") || strings.Contains(ls, "flight")

	if strings.Contains(lower, "fighter") || strings.Contains(lower, "jet") {
		if inFlight {
			return "Military fighter jet in flight."
		}
		return "Military fighter jet on the ground."
	}
	if strings.Contains(lower, "helicopter") {
		if inFlight {
			return "Military helicopter in flight."
		}
		return "Military helicopter on the ground."
	}
	if inFlight {
		return fmt.Sprintf("Military %s in flight.", lower)
	}
	return fmt.Sprintf("Military %s.", lower)
}

func describePoliticalSubject(subject, ls string) string {
	if containsAny(ls, []string{"suit", "tie", "podium", "microphone", "meeting"}) {
		if strings.Contains(ls, "speaking") || strings.Contains(ls, "microphone") {
			return fmt.Sprintf("%s speaking at podium.", subject)
		}
		if strings.Contains(ls, "meeting") {
			return fmt.Sprintf("%s in formal meeting.", subject)
		}
		return fmt.Sprintf("%s in formal attire.", subject)
	}
	if strings.Contains(ls, "outdoor") || strings.Contains(ls, "crowd") {
		return fmt.Sprintf("%s at official event.", subject)
	}
	return fmt.Sprintf("%s in official capacity.", subject)
}

func describeTechnologySubject(subject, ls string) string {
	lower := strings.ToLower(subject)
	if strings.Contains(lower, "computer") || strings.Contains(lower, "device") {
		if strings.Contains(ls, "screen") || strings.Contains(ls, "display") {
			return fmt.Sprintf("%s showing display screen.", subject)
		}
		return fmt.Sprintf("%s in operation.", subject)
	}
	if strings.Contains(lower, "camera") {
		return "Camera equipment in use."
	}
	if strings.Contains(lower, "phone") {
		return "Mobile device in communication setup."
	}
	return fmt.Sprintf("Technology %s in use.", lower)
}
