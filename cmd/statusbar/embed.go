package main

import _ "embed"

// embeddedConfig holds YAML configuration embedded at build time. It sits
// between the built-in defaults and any config file, so packagers can ship
// different defaults without patching code.
//
//go:embed embed_config.yaml
var embeddedConfig []byte
