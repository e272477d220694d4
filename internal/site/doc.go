// Package site models the configuration object handed to the external static site
// generator: site metadata, locales, top navigation, path-prefixed sidebars, theme
// options and passthrough options for the Markdown renderer and bundler.
//
// Values are built once (Default, Decode) and treated as immutable afterwards.
// Locales and Sidebar are ordered mappings: they encode as JSON/YAML objects in
// declaration order and reject duplicate keys when decoded.
package site
