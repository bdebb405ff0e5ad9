package plugin

import (
	_ "embed"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/signadot/clangfmt/config"
)

const (
	Name            = "clangfmt"
	Repository      = "https://github.com/signadot/clangfmt"
	HelpURL         = Repository + "#readme"
	ConfigSchemaURL = ""
	UpdateURL       = Repository + "/releases/latest"
)

//go:embed license.txt
var license string

// Info describes the plugin to a host.
type Info struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	ConfigKey       string   `json:"configKey"`
	HelpURL         string   `json:"helpUrl"`
	ConfigSchemaURL string   `json:"configSchemaUrl"`
	UpdateURL       string   `json:"updateUrl,omitempty"`
	FileExtensions  []string `json:"fileExtensions"`
}

func GetInfo() Info {
	return Info{
		Name:            Name,
		Version:         Version(),
		ConfigKey:       config.ConfigKey,
		HelpURL:         HelpURL,
		ConfigSchemaURL: ConfigSchemaURL,
		UpdateURL:       UpdateURL,
		FileExtensions:  Extensions(),
	}
}

// Version is the main module version recorded in the binary, or "devel".
func Version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" || bi.Main.Version == "(devel)" {
		return "devel"
	}
	return bi.Main.Version
}

// LicenseText returns the plugin's license.
func LicenseText() string {
	return license
}

// extensions are the file extensions clang-format has a language for, in
// the form hosts match them: without the leading dot, case-sensitive.
var extensions = []string{
	"cs",
	"java",
	"mjs", "js", "ts",
	"json",
	"m", "mm",
	"proto", "protodevel",
	"td",
	"textpb", "pb.txt", "textproto", "asciipb",
	"sv", "svh", "v", "vh",
	"c", "h", "cc", "hh", "cpp", "hpp", "c++", "C", "cxx",
}

func Extensions() []string {
	return slices.Clone(extensions)
}

// Supports reports whether path has an extension clang-format can format.
// Multi-part extensions like "pb.txt" are matched against the whole
// file name suffix.
func Supports(path string) bool {
	base := filepath.Base(path)
	for _, ext := range extensions {
		if strings.HasSuffix(base, "."+ext) && len(base) > len(ext)+1 {
			return true
		}
	}
	return false
}
