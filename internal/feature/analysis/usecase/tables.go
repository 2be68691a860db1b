package usecase

import (
	"strings"

	"imageclass_backend/internal/feature/analysis/domain/entity"
)

// 本ファイルは抽出・分類・記述生成で共有される固定テーブルを保持します。
// すべて不変で、呼び出し間で共有されます（初期化後の変更禁止）。

// countryIndicators は国旗・国章フレーズから国名を引くための辞書です。
// ラベルごとに最初に一致した国が採用されます。
var countryIndicators = map[string][]string{
	"Iran":          {"iranian flag", "iran flag", "persian flag", "flag of iran"},
	"Russia":        {"russian flag", "russia flag", "flag of russia"},
	"China":         {"chinese flag", "china flag", "flag of china"},
	"United States": {"american flag", "us flag", "usa flag", "flag of the united states"},
	"North Korea":   {"north korean flag", "north korea flag", "flag of north korea"},
}

// countryIndicatorOrder はcountryIndicatorsの判定順を固定します。
var countryIndicatorOrder = []string{"Iran", "Russia", "China", "United States", "North Korea"}

// countryFlagTerms は国旗シーン解析用の国別フレーズ辞書です。
// countryIndicatorsより広い範囲をカバーします。
var countryFlagTerms = map[string][]string{
	"united states":  {"american flag", "stars and stripes", "usa flag", "flag of united states", "flag of the united states", "us flag"},
	"china":          {"chinese flag", "china flag", "red flag with yellow stars", "flag of china"},
	"russia":         {"russian flag", "russia flag"},
	"united kingdom": {"union jack", "british flag", "uk flag"},
	"france":         {"french flag", "tricolor flag"},
	"germany":        {"german flag", "germany flag"},
	"japan":          {"japanese flag", "rising sun flag"},
	"south korea":    {"south korean flag", "korean flag"},
	"north korea":    {"north korean flag", "dprk flag"},
	"iran":           {"iranian flag", "iran flag"},
	"israel":         {"israeli flag", "israel flag"},
	"saudi arabia":   {"saudi flag", "saudi arabia flag"},
	"uae":            {"uae flag", "united arab emirates flag"},
	"india":          {"indian flag", "india flag"},
	"pakistan":       {"pakistani flag", "pakistan flag"},
	"turkey":         {"turkish flag", "turkey flag"},
	"egypt":          {"egyptian flag", "egypt flag"},
	"syria":          {"syrian flag", "syria flag"},
	"lebanon":        {"lebanese flag", "lebanon flag"},
	"jordan":         {"jordanian flag", "jordan flag"},
	"iraq":           {"iraqi flag", "iraq flag"},
	"afghanistan":    {"afghan flag", "afghanistan flag"},
	"yemen":          {"yemeni flag", "yemen flag"},
	"oman":           {"omani flag", "oman flag"},
	"kuwait":         {"kuwaiti flag", "kuwait flag"},
	"qatar":          {"qatari flag", "qatar flag"},
	"bahrain":        {"bahraini flag", "bahrain flag"},
	"taiwan":         {"taiwanese flag", "taiwan flag", "republic of china flag"},
	"vietnam":        {"vietnamese flag", "vietnam flag", "flag of vietnam"},
	"thailand":       {"thai flag", "thailand flag"},
	"singapore":      {"singapore flag"},
	"malaysia":       {"malaysian flag", "malaysia flag"},
	"indonesia":      {"indonesian flag", "indonesia flag"},
	"philippines":    {"philippine flag", "philippines flag"},
	"australia":      {"australian flag", "australia flag"},
	"canada":         {"canadian flag", "maple leaf flag"},
	"mexico":         {"mexican flag", "mexico flag"},
	"brazil":         {"brazilian flag", "brazil flag"},
	"argentina":      {"argentinian flag", "argentina flag"},
	"cuba":           {"cuban flag", "cuba flag"},
	"venezuela":      {"venezuelan flag", "venezuela flag"},
	"colombia":       {"colombian flag", "colombia flag"},
	"south africa":   {"south african flag", "south africa flag"},
	"nigeria":        {"nigerian flag", "nigeria flag"},
	"morocco":        {"moroccan flag", "morocco flag"},
	"algeria":        {"algerian flag", "algeria flag"},
	"tunisia":        {"tunisian flag", "tunisia flag"},
	"libya":          {"libyan flag", "libya flag"},
	"sudan":          {"sudanese flag", "sudan flag"},
	"ethiopia":       {"ethiopian flag", "ethiopia flag"},
	"kenya":          {"kenyan flag", "kenya flag"},
	"ukraine":        {"ukrainian flag", "ukraine flag"},
	"belarus":        {"belarusian flag", "belarus flag"},
	"poland":         {"polish flag", "poland flag"},
	"romania":        {"romanian flag", "romania flag"},
	"greece":         {"greek flag", "greece flag"},
	"azerbaijan":     {"azerbaijani flag", "azerbaijan flag"},
	"georgia":        {"georgian flag", "georgia flag"},
	"armenia":        {"armenian flag", "armenia flag"},
	"hungary":        {"hungarian flag", "hungary flag"},
	"austria":        {"austrian flag", "austria flag"},
	"switzerland":    {"swiss flag", "switzerland flag"},
	"italy":          {"italian flag", "italy flag"},
	"spain":          {"spanish flag", "spain flag"},
	"portugal":       {"portuguese flag", "portugal flag"},
	"serbia":         {"serbian flag", "serbia flag"},
	"croatia":        {"croatian flag", "croatia flag"},
	"albania":        {"albanian flag", "albania flag"},
	"denmark":        {"danish flag", "denmark flag"},
	"norway":         {"norwegian flag", "norway flag"},
	"sweden":         {"swedish flag"},
	"finland":        {"finnish flag", "finland flag"},
	"iceland":        {"icelandic flag", "iceland flag"},
	"estonia":        {"estonian flag", "estonia flag"},
	"latvia":         {"latvian flag", "latvia flag"},
	"lithuania":      {"lithuanian flag", "lithuania flag"},
	"netherlands":    {"dutch flag", "netherlands flag"},
	"belgium":        {"belgian flag", "belgium flag"},
	"ireland":        {"irish flag", "ireland flag"},
}

// countryFlagOrder はcountryFlagTermsの判定順を固定します。
// 複数国旗シーンの列挙順はこの順序に従います。
var countryFlagOrder = []string{
	"united states", "china", "russia", "united kingdom", "france", "germany",
	"japan", "south korea", "north korea", "iran", "israel", "saudi arabia",
	"uae", "india", "pakistan", "turkey", "egypt", "syria", "lebanon", "jordan",
	"iraq", "afghanistan", "yemen", "oman", "kuwait", "qatar", "bahrain",
	"taiwan", "vietnam", "thailand", "singapore", "malaysia", "indonesia",
	"philippines", "australia", "canada", "mexico", "brazil", "argentina",
	"cuba", "venezuela", "colombia", "south africa", "nigeria", "morocco",
	"algeria", "tunisia", "libya", "sudan", "ethiopia", "kenya", "ukraine",
	"belarus", "poland", "romania", "greece", "azerbaijan", "georgia",
	"armenia", "hungary", "austria", "switzerland", "italy", "spain",
	"portugal", "serbia", "croatia", "albania", "denmark", "norway", "sweden",
	"finland", "iceland", "estonia", "latvia", "lithuania", "netherlands",
	"belgium", "ireland",
}

// politicalTitleTerms は政治的役職を示すラベル語です（人物抽出、閾値0.6）。
var politicalTitleTerms = []string{
	"president", "prime minister", "minister", "secretary", "ambassador",
	"governor", "mayor", "senator", "congressman", "diplomat", "chancellor",
	"politician", "leader", "official", "spokesperson", "representative",
	"executive", "director", "chairman", "ceo", "founder", "chairperson",
	"premier", "foreign minister", "defense minister", "interior minister",
}

// genericPersonTerms は役職語と併存した場合に人物抽出から除外する汎用語です。
var genericPersonTerms = []string{
	"person", "people", "man", "woman", "crowd", "group", "audience", "citizen",
	"individual", "portrait", "photograph", "picture", "image",
}

// formalSettingTerms は政治的コンテキストを示唆するフォーマルな場面の語です（閾値0.7）。
var formalSettingTerms = []string{
	"suit", "tie", "jacket", "blazer", "podium", "microphone", "press conference",
	"meeting", "summit", "ceremony", "diplomatic", "government", "parliament",
}

// locationTerms は場所・建物を示すラベル語です（閾値0.7）。
var locationTerms = []string{
	"building", "structure", "facility", "embassy", "office", "headquarters",
	"venue", "stadium", "airport", "station", "hospital", "school",
}

// orgTerms は組織を示すラベル語です（閾値0.75）。
var orgTerms = []string{
	"government", "company", "organization", "agency", "ministry",
	"corporation", "foundation", "institute", "university",
}

// orgExcludeTerms は装備と組織の混同を避けるための除外語です。
var orgExcludeTerms = []string{
	"military", "aircraft", "helicopter", "tank", "missile", "warship", "vehicle",
}

// objectTerms はオブジェクトを示すラベル語です（閾値0.75）。
var objectTerms = []string{
	"vehicle", "aircraft", "ship", "equipment", "device", "tool", "weapon",
	"flag", "uniform", "building", "structure",
}

// envNoiseTerms は環境ノイズ語です。オブジェクト抽出とキーワード生成で除外されます。
var envNoiseTerms = []string{
	"blue", "pole", "sunlight", "wind", "day", "light", "dark", "color",
}

// nameConnectors はページタイトルから人名パターンを検出するための接続語です。
var nameConnectors = []string{" at ", " in ", " speaks", " meets", " visits"}

// militaryTextIndicators は抽出テキストを保持する条件となる軍事識別子です。
var militaryTextIndicators = []string{
	"tel", "sam", "icbm", "slbm", "iran", "russia", "china",
	"usa", "us", "military", "army", "navy", "air force",
}

// equipmentTerms は明確な軍事装備を示す語です（信頼度ボーナス判定専用）。
var equipmentTerms = []string{
	"tank", "missile", "fighter jet", "military aircraft", "combat aircraft",
	"warship", "submarine", "military vehicle", "armored personnel carrier",
	"howitzer", "artillery", "radar system", "military helicopter",
}

// equipmentExcludeTerms は装備分類から除外する語です。
var equipmentExcludeTerms = []string{
	"flag", "pole", "sunlight", "wind", "day", "government", "blue", "sky",
	"person", "people", "crowd", "uniform", "soldier", "military person",
	"united states", "america", "country", "flag of", "national", "anthem",
	"building", "structure", "office", "embassy", "headquarters",
}

// militarySceneTerms は軍事・戦場シーンのトリガー語です。
var militarySceneTerms = []string{
	"military", "soldier", "army", "uniform", "camouflage", "rifle", "weapon", "gun",
}

// maritimeSceneTerms は海事シーンのトリガー語です。
var maritimeSceneTerms = []string{"ship", "boat", "vessel", "carrier", "submarine"}

// aviationSceneTerms は航空シーンのトリガー語です。
var aviationSceneTerms = []string{"aircraft", "helicopter", "plane", "fighter", "military aircraft"}

// containsAny はsがtermsのいずれかの部分文字列を含むかを返します。
func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// labelString は全ラベルテキストを小文字で連結した文字列を返します。
// 部分文字列ベースのシーン判定で使用します。
func labelString(labels []entity.ScoredLabel) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, strings.ToLower(l.Text))
	}
	return strings.Join(parts, " ")
}
