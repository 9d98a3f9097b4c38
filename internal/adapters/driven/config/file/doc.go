// Package file keeps consolidator settings in a TOML file.
//
//	[identity]
//	strategy = "content"
//
//	[storage]
//	data_dir = "/work/project/.consolidator"
//
//	[output]
//	verbose = true
package file
