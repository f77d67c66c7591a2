//go:build !unix

package server

import "os"

func withSocketMode(_ os.FileMode, bind func() error) error { return bind() }
