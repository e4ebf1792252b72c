package models

// Master maps a category key ("factory", "species", ...) to the ordered list
// of selectable values for that category. It is loaded and replaced wholesale,
// never partially updated.
type Master map[string][]string

// Category keys present in the master sheet.
const (
	MasterFactory     = "factory"
	MasterPerson      = "person"
	MasterSpecies     = "species"
	MasterSupplier    = "supplier"
	MasterAdmin       = "admin"
	MasterOzone       = "ozone"
	MasterOzonePerson = "ozone_person"
	MasterOrigin      = "origin"
	MasterVisualToxic = "visual_toxic"
	MasterState       = "state"
)

// Fallback option lists used when the master sheet lacks a category.
var (
	FallbackOzone       = []string{"実施", "未実施"}
	FallbackVisualToxic = []string{"問題なし", "要確認", "廃棄"}
	FallbackState       = []string{"ラウンド", "頭落とし（腹出）", "三枚卸し", "切り身", "柵", "刺身"}
)

// Options returns the values for a category, or the fallback when the master
// has none.
func (m Master) Options(key string, fallback []string) []string {
	if vals, ok := m[key]; ok && len(vals) > 0 {
		return vals
	}
	return fallback
}

// WithFallbacks returns a copy of the master with the built-in option lists
// filled in for every category the sheet left out. Sheet-provided values
// always win.
func (m Master) WithFallbacks() Master {
	out := make(Master, len(m)+3)
	for k, v := range m {
		out[k] = v
	}
	for k, fb := range map[string][]string{
		MasterOzone:       FallbackOzone,
		MasterVisualToxic: FallbackVisualToxic,
		MasterState:       FallbackState,
	} {
		out[k] = m.Options(k, fb)
	}
	return out
}
