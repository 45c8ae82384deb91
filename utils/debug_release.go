//go:build !swedebug

package utils

const Debug = false
