package models

// ConfigEntry is a single key/value pair of the site-wide web_config
// table. Entries drive site behavior that content editors may change at
// runtime (theme names, banner text, feature switches).
type ConfigEntry struct {
	Key   string `json:"config_key"`
	Value string `json:"config_val"`
}
