package cmd

import "github.com/k3tzchen/conf/pkg"

var (
	ErrNoStore     = pkg.ErrReference.Kind("no configuration store")
	ErrWriteConfig = pkg.ErrIO.Kind("write configuration file")
	ErrFileExists  = pkg.ErrIO.Kind("file exists (use --force to overwrite)")
	ErrReadSource  = pkg.ErrIO.Kind("read source")
	ErrOutput      = pkg.ErrType.Kind("unsupported output format")
	ErrTransform   = pkg.ErrType.Kind("compile transform")
)
