// Package config loads classdump settings from a TOML file.
//
// The file is named classdump.toml and is looked up from the working
// directory upwards. Every key is optional:
//
//	[dump]
//	indent = 4
//	color = "auto"   # auto, always or never
//	code = true
//	pool = true
//
//	[decode]
//	lenient = false
package config
