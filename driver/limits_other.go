//go:build !unix

package driver

func checkFileLimit(jobs int) {}
