//go:build swedebug

package utils

// Debug enables internal consistency checks, build with -tags swedebug
const Debug = true
