package config

// GlobalConfig holds the formatting defaults a host applies to every
// plugin. A nil field is unset.
type GlobalConfig struct {
	NewLineKind *NewLineKind
	LineWidth   *uint32
	IndentWidth *uint8
	UseTabs     *bool
}

// Merge returns g with every unset field filled from weaker.
func (g GlobalConfig) Merge(weaker GlobalConfig) GlobalConfig {
	if g.NewLineKind == nil {
		g.NewLineKind = weaker.NewLineKind
	}
	if g.LineWidth == nil {
		g.LineWidth = weaker.LineWidth
	}
	if g.IndentWidth == nil {
		g.IndentWidth = weaker.IndentWidth
	}
	if g.UseTabs == nil {
		g.UseTabs = weaker.UseTabs
	}
	return g
}
