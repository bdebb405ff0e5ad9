// Package plugin holds the metadata a formatting host asks for: name,
// version, configuration key, URLs, license and the file extensions the
// plugin accepts.
package plugin
